package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/studymatehq/studymate/internal/domain/discussion"
)

type DiscussionsRepo struct {
	mu    sync.RWMutex
	items map[string]*discussion.Discussion
}

func NewDiscussionsRepo() *DiscussionsRepo {
	return &DiscussionsRepo{
		items: make(map[string]*discussion.Discussion),
	}
}

func (r *DiscussionsRepo) List(courseID string) []discussion.Discussion {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]discussion.Discussion, 0, len(r.items))

	for _, d := range r.items {
		if courseID == "" || d.CourseID == courseID {
			out = append(out, *d)
		}
	}

	return out
}

func (r *DiscussionsRepo) Create(courseID, authorID, authorName, title, content string) discussion.Discussion {
	d := &discussion.Discussion{
		ID:         uuid.NewString(),
		CourseID:   courseID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Title:      title,
		Content:    content,
		Replies:    []discussion.Reply{},
		Likes:      0,
		IsLiked:    false,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	r.mu.Lock()
	r.items[d.ID] = d
	r.mu.Unlock()

	return *d
}

func (r *DiscussionsRepo) AddReply(discussionID, authorID, authorName, content string) (discussion.Reply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.items[discussionID]

	if !ok {
		return discussion.Reply{}, ErrNotFound
	}

	reply := discussion.Reply{
		ID:           uuid.NewString(),
		DiscussionID: discussionID,
		AuthorID:     authorID,
		AuthorName:   authorName,
		Content:      content,
		Likes:        0,
		IsLiked:      false,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	d.Replies = append(d.Replies, reply)

	return reply, nil
}

// Like bumps the counter; liking a missing discussion is a silent no-op.

func (r *DiscussionsRepo) Like(discussionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.items[discussionID]

	if !ok {
		return
	}

	d.Likes++
	d.IsLiked = true
}

func (r *DiscussionsRepo) Put(d discussion.Discussion) {
	r.mu.Lock()
	r.items[d.ID] = &d
	r.mu.Unlock()
}
