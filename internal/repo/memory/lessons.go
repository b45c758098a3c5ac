package memory

import (
	"sort"
	"sync"

	"github.com/studymatehq/studymate/internal/domain/course"
)

type LessonsRepo struct {
	mu       sync.RWMutex
	byCourse map[string][]course.Lesson
}

func NewLessonsRepo() *LessonsRepo {
	return &LessonsRepo{
		byCourse: make(map[string][]course.Lesson),
	}
}

// ListByCourse returns the course's lessons in order. Unknown course ids get
// an empty list, not an error.

func (r *LessonsRepo) ListByCourse(courseID string) []course.Lesson {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lessons := r.byCourse[courseID]

	out := make([]course.Lesson, len(lessons))
	copy(out, lessons)

	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })

	return out
}

func (r *LessonsRepo) Complete(courseID, lessonID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lessons, ok := r.byCourse[courseID]

	if !ok {
		return ErrNotFound
	}

	for i := range lessons {
		if lessons[i].ID == lessonID {
			lessons[i].IsCompleted = true
			return nil
		}
	}

	return ErrNotFound
}

func (r *LessonsRepo) Put(courseID string, lessons []course.Lesson) {
	r.mu.Lock()
	r.byCourse[courseID] = lessons
	r.mu.Unlock()
}
