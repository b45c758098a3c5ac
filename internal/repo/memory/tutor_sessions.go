package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/studymatehq/studymate/internal/domain/tutor"
)

type TutorSessionsRepo struct {
	mu    sync.RWMutex
	items map[string]*tutor.Session
}

func NewTutorSessionsRepo() *TutorSessionsRepo {
	return &TutorSessionsRepo{
		items: make(map[string]*tutor.Session),
	}
}

func (r *TutorSessionsRepo) List() []tutor.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tutor.Session, 0, len(r.items))

	for _, s := range r.items {
		out = append(out, *s)
	}

	return out
}

func (r *TutorSessionsRepo) Create(userID, subject string) tutor.Session {
	now := time.Now().UTC().Format(time.RFC3339)

	s := &tutor.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Subject:   subject,
		Messages:  []tutor.ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.mu.Lock()
	r.items[s.ID] = s
	r.mu.Unlock()

	return *s
}

func (r *TutorSessionsRepo) GetByID(id string) (tutor.Session, error) {
	r.mu.RLock()
	s, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return tutor.Session{}, ErrNotFound
	}

	return *s, nil
}

// AppendMessage records one chat turn and bumps the session's updated time.

func (r *TutorSessionsRepo) AppendMessage(sessionID, role, content string) (tutor.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[sessionID]

	if !ok {
		return tutor.ChatMessage{}, ErrNotFound
	}

	msg := tutor.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	s.Messages = append(s.Messages, msg)
	s.UpdatedAt = msg.Timestamp

	return msg, nil
}

func (r *TutorSessionsRepo) Put(s tutor.Session) {
	r.mu.Lock()
	r.items[s.ID] = &s
	r.mu.Unlock()
}
