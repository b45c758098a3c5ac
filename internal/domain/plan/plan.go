package plan

const (
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
	StatusPaused    = "PAUSED"
)

type StudyPlan struct {
	ID              string   `json:"id"`
	UserID          string   `json:"userId"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	TargetDate      string   `json:"targetDate"`
	Courses         []string `json:"courses"` // course ids
	DailyStudyHours int      `json:"dailyStudyHours"`
	Progress        int      `json:"progress"` // percentage
	Status          string   `json:"status"`
	CreatedAt       string   `json:"createdAt"`
}

type CreatePlanRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Courses         []string `json:"courses"`
	TargetDate      string   `json:"targetDate"`
	DailyStudyHours int      `json:"dailyStudyHours"`
}

// UpdatePlanRequest carries partial updates; nil fields are left untouched.
type UpdatePlanRequest struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	DailyStudyHours *int      `json:"dailyStudyHours"`
	Status          *string   `json:"status"`
	Courses         *[]string `json:"courses"`
}
