package memory

import (
	"sync"
	"time"

	"github.com/studymatehq/studymate/internal/domain/assignment"
)

type AssignmentsRepo struct {
	mu    sync.RWMutex
	items map[string]assignment.Assignment
}

func NewAssignmentsRepo() *AssignmentsRepo {
	return &AssignmentsRepo{
		items: make(map[string]assignment.Assignment),
	}
}

func (r *AssignmentsRepo) List(courseID string) []assignment.Assignment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignment.Assignment, 0, len(r.items))

	for _, a := range r.items {
		if courseID == "" || a.CourseID == courseID {
			out = append(out, a)
		}
	}

	return out
}

func (r *AssignmentsRepo) GetByID(id string) (assignment.Assignment, error) {
	r.mu.RLock()
	a, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return assignment.Assignment{}, ErrNotFound
	}

	return a, nil
}

// Submit flips the assignment to SUBMITTED and stamps the submission time.
// Resubmitting just refreshes the timestamp.

func (r *AssignmentsRepo) Submit(id string) (assignment.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[id]

	if !ok {
		return assignment.Assignment{}, ErrNotFound
	}

	a.Status = assignment.StatusSubmitted
	a.SubmittedAt = time.Now().UTC().Format(time.RFC3339)
	r.items[id] = a

	return a, nil
}

func (r *AssignmentsRepo) Put(a assignment.Assignment) {
	r.mu.Lock()
	r.items[a.ID] = a
	r.mu.Unlock()
}
