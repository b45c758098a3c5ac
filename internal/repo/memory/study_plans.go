package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/studymatehq/studymate/internal/domain/plan"
)

type StudyPlansRepo struct {
	mu    sync.RWMutex
	items map[string]plan.StudyPlan
}

func NewStudyPlansRepo() *StudyPlansRepo {
	return &StudyPlansRepo{
		items: make(map[string]plan.StudyPlan),
	}
}

func (r *StudyPlansRepo) List() []plan.StudyPlan {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]plan.StudyPlan, 0, len(r.items))

	for _, p := range r.items {
		out = append(out, p)
	}

	return out
}

func (r *StudyPlansRepo) Create(userID string, req plan.CreatePlanRequest) plan.StudyPlan {
	now := time.Now().UTC()

	title := req.Title

	if title == "" {
		title = "New Plan"
	}

	targetDate := req.TargetDate

	if targetDate == "" {
		targetDate = now.AddDate(0, 0, 30).Format(time.RFC3339)
	}

	hours := req.DailyStudyHours

	if hours <= 0 {
		hours = 1
	}

	courses := req.Courses

	if courses == nil {
		courses = []string{}
	}

	p := plan.StudyPlan{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           title,
		Description:     req.Description,
		TargetDate:      targetDate,
		Courses:         courses,
		DailyStudyHours: hours,
		Progress:        0,
		Status:          plan.StatusActive,
		CreatedAt:       now.Format(time.RFC3339),
	}

	r.mu.Lock()
	r.items[p.ID] = p
	r.mu.Unlock()

	return p
}

func (r *StudyPlansRepo) Update(id string, req plan.UpdatePlanRequest) (plan.StudyPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]

	if !ok {
		return plan.StudyPlan{}, ErrNotFound
	}

	if req.Title != nil {
		p.Title = *req.Title
	}

	if req.Description != nil {
		p.Description = *req.Description
	}

	if req.DailyStudyHours != nil {
		p.DailyStudyHours = *req.DailyStudyHours
	}

	if req.Status != nil {
		p.Status = *req.Status
	}

	if req.Courses != nil {
		p.Courses = *req.Courses
	}

	r.items[id] = p

	return p, nil
}

// Delete is idempotent; removing a missing plan is not an error.

func (r *StudyPlansRepo) Delete(id string) {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
}

func (r *StudyPlansRepo) Put(p plan.StudyPlan) {
	r.mu.Lock()
	r.items[p.ID] = p
	r.mu.Unlock()
}
