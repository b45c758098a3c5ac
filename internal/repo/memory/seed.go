package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/studymatehq/studymate/internal/domain/assignment"
	"github.com/studymatehq/studymate/internal/domain/course"
	"github.com/studymatehq/studymate/internal/domain/discussion"
	"github.com/studymatehq/studymate/internal/domain/plan"
	"github.com/studymatehq/studymate/internal/domain/tutor"
)

// Stores bundles the in-memory demo repositories the API serves from.
type Stores struct {
	Assignments   *AssignmentsRepo
	StudyPlans    *StudyPlansRepo
	Discussions   *DiscussionsRepo
	TutorSessions *TutorSessionsRepo
	Lessons       *LessonsRepo
}

func NewStores() *Stores {
	return &Stores{
		Assignments:   NewAssignmentsRepo(),
		StudyPlans:    NewStudyPlansRepo(),
		Discussions:   NewDiscussionsRepo(),
		TutorSessions: NewTutorSessionsRepo(),
		Lessons:       NewLessonsRepo(),
	}
}

// SampleCourses builds the demo course catalog. Ids are derived from the
// course number, so every boot (and every process) produces the same ids and
// lessons, assignments and study plans stay joined to the courses already
// persisted in the database.

func SampleCourses(now time.Time) []course.Course {
	out := make([]course.Course, 0, 5)

	for i := 1; i <= 5; i++ {
		category := "Math"

		if i%2 == 0 {
			category = "Science"
		}

		difficulty := "BEGINNER"

		switch {
		case i%3 == 0:
			difficulty = "ADVANCED"
		case i%2 == 0:
			difficulty = "INTERMEDIATE"
		}

		out = append(out, course.Course{
			ID:               sampleCourseID(i),
			Title:            fmt.Sprintf("Course %d", i),
			Description:      fmt.Sprintf("Description for course %d", i),
			Instructor:       fmt.Sprintf("Instructor %d", i),
			Category:         category,
			Difficulty:       difficulty,
			Duration:         10 + i,
			EnrolledStudents: 100 * i,
			Rating:           4.0 + float64(i%5)*0.1,
			CreatedAt:        now.AddDate(0, 0, -(10 - i)),
			UpdatedAt:        now,
		})
	}

	return out
}

func sampleCourseID(i int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("studymate/courses/%d", i))).String()
}

// Seed populates the demo dataset: lessons and one assignment per sample
// course, a study plan, a discussion, and a tutor session.

func (s *Stores) Seed(courses []course.Course) {
	now := time.Now().UTC()

	courseIDs := make([]string, 0, len(courses))

	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)

		lessons := make([]course.Lesson, 0, 6)

		for j := 1; j <= 6; j++ {
			lessons = append(lessons, course.Lesson{
				ID:          uuid.NewString(),
				CourseID:    c.ID,
				Title:       fmt.Sprintf("Lesson %d", j),
				Description: fmt.Sprintf("Lesson description %d", j),
				Content:     fmt.Sprintf("# Lesson %d content", j),
				Duration:    15 + j,
				Order:       j,
			})
		}

		s.Lessons.Put(c.ID, lessons)

		s.Assignments.Put(assignment.Assignment{
			ID:          uuid.NewString(),
			CourseID:    c.ID,
			Title:       "Assignment for " + c.Title,
			Description: "Complete tasks for " + c.Title,
			DueDate:     now.AddDate(0, 0, 7).Format(time.RFC3339),
			MaxScore:    100,
			Status:      assignment.StatusPending,
		})
	}

	s.StudyPlans.Put(plan.StudyPlan{
		ID:              uuid.NewString(),
		UserID:          "demo-user",
		Title:           "My First Plan",
		Description:     "Get through basics",
		TargetDate:      now.AddDate(0, 0, 30).Format(time.RFC3339),
		Courses:         courseIDs[:min(3, len(courseIDs))],
		DailyStudyHours: 2,
		Progress:        10,
		Status:          plan.StatusActive,
		CreatedAt:       now.Format(time.RFC3339),
	})

	s.Discussions.Put(discussion.Discussion{
		ID:         uuid.NewString(),
		AuthorID:   "demo-user",
		AuthorName: "student",
		Title:      "Welcome to StudyMate",
		Content:    "Let's learn together!",
		Replies:    []discussion.Reply{},
		Likes:      3,
		CreatedAt:  now.Format(time.RFC3339),
	})

	s.TutorSessions.Put(tutor.Session{
		ID:        uuid.NewString(),
		UserID:    "demo-user",
		Subject:   "Mathematics",
		Messages:  []tutor.ChatMessage{},
		CreatedAt: now.Format(time.RFC3339),
		UpdatedAt: now.Format(time.RFC3339),
	})
}
