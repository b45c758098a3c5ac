package assignment

const (
	StatusPending   = "PENDING"
	StatusSubmitted = "SUBMITTED"
	StatusGraded    = "GRADED"
)

type Assignment struct {
	ID          string  `json:"id"`
	CourseID    string  `json:"courseId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     string  `json:"dueDate"`
	MaxScore    int     `json:"maxScore"`
	Status      string  `json:"status"`
	SubmittedAt string  `json:"submittedAt,omitempty"`
	Score       *int    `json:"score,omitempty"`
	Feedback    *string `json:"feedback,omitempty"`
}
