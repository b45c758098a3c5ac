package jobs

type JobType string

const (
	JobSubmissionReceipt JobType = "submission_receipt"

	// future use case: nudge students who miss their daily study hours
	JobStudyReminder JobType = "study_reminder"
)

// check to see if the job type is a known constant

func (t JobType) IsValid() bool {
	switch t {
	case JobSubmissionReceipt, JobStudyReminder:
		return true
	default:
		return false
	}
}
