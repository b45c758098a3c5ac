package jobs

// SubmissionReceiptPayload is queued when a student submits an assignment.
// Keep payload minimal and ID-based; the worker resolves details itself.
type SubmissionReceiptPayload struct {
	AssignmentID string `json:"assignmentId"`
	CourseID     string `json:"courseId,omitempty"`
	Subject      string `json:"subject"`             // account email, if known
	RequestID    string `json:"requestId,omitempty"` // correlation
}

// StudyReminderPayload nudges a student about their study plan.
type StudyReminderPayload struct {
	PlanID  string `json:"planId"`
	Subject string `json:"subject"`
}
