package notifications

import "context"

type SendSubmissionReceiptInput struct {
	Email        string
	AssignmentID string
	CourseID     string
	SubmittedAt  string
}

type Notifier interface {
	SendSubmissionReceipt(ctx context.Context, input SendSubmissionReceiptInput) error
}
