package course

import "time"

type Course struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Instructor       string    `json:"instructor"`
	Category         string    `json:"category"`
	Difficulty       string    `json:"difficulty"` // BEGINNER | INTERMEDIATE | ADVANCED
	Duration         int       `json:"duration"`   // hours
	EnrolledStudents int       `json:"enrolledStudents"`
	Rating           float64   `json:"rating"`
	Thumbnail        string    `json:"thumbnail,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type Lesson struct {
	ID          string `json:"id"`
	CourseID    string `json:"courseId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	VideoURL    string `json:"videoUrl,omitempty"`
	Duration    int    `json:"duration"` // minutes
	Order       int    `json:"order"`
	IsCompleted bool   `json:"isCompleted"`
}

// PDF is the course material blob stored alongside a course, keyed by
// course id (one document per course, replaced on re-upload).
type PDF struct {
	CourseID    string    `json:"courseId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Data        []byte    `json:"-"`
	UploadedAt  time.Time `json:"uploadedAt"`
}
