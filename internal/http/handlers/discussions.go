package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studymatehq/studymate/internal/config"
	"github.com/studymatehq/studymate/internal/domain/discussion"
	"github.com/studymatehq/studymate/internal/domain/user"
	"github.com/studymatehq/studymate/internal/http/middlewares"
	"github.com/studymatehq/studymate/internal/repo/memory"
)

type AuthorLookup interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type DiscussionsHandler struct {
	discussions *memory.DiscussionsRepo
	users       AuthorLookup
}

func NewDiscussionsHandler(discussions *memory.DiscussionsRepo, users AuthorLookup) *DiscussionsHandler {
	return &DiscussionsHandler{
		discussions: discussions,
		users:       users,
	}
}

type CreateDiscussionRequest struct {
	CourseID string `json:"courseId"`
	Title    string `json:"title" binding:"required,min=1,max=200"`
	Content  string `json:"content" binding:"required,min=1"`
}

type CreateReplyRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// author resolves the posting identity. Anonymous requests get a demo
// identity so the forum stays usable without login.
func (h *DiscussionsHandler) author(ctx *gin.Context) (id, name string) {
	subject, ok := middlewares.SubjectFromContext(ctx)

	if !ok {
		return "demo-user", "Anonymous"
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByEmail(cctx, subject)

	if err != nil {
		return "demo-user", "Anonymous"
	}

	name = u.FullName

	if name == "" {
		name = u.Username
	}

	return u.ID, name
}

func (h *DiscussionsHandler) List(ctx *gin.Context) {
	page, size := parsePaging(ctx)

	all := h.discussions.List(ctx.Query("courseId"))

	start := page * size

	if start > len(all) {
		start = len(all)
	}

	end := start + size

	if end > len(all) {
		end = len(all)
	}

	ctx.JSON(http.StatusOK, PageResponse[discussion.Discussion]{
		Content:       all[start:end],
		TotalElements: int64(len(all)),
	})
}

func (h *DiscussionsHandler) Create(ctx *gin.Context) {
	var req CreateDiscussionRequest

	if !BindJSON(ctx, &req) {
		return
	}

	authorID, authorName := h.author(ctx)

	d := h.discussions.Create(req.CourseID, authorID, authorName, req.Title, req.Content)

	ctx.JSON(http.StatusOK, d)
}

func (h *DiscussionsHandler) Reply(ctx *gin.Context) {
	var req CreateReplyRequest

	if !BindJSON(ctx, &req) {
		return
	}

	authorID, authorName := h.author(ctx)

	r, err := h.discussions.AddReply(ctx.Param("id"), authorID, authorName, req.Content)

	if err != nil {
		if errors.Is(err, memory.ErrNotFound) {
			RespondNotFound(ctx, "Discussion not found.")
			return
		}

		RespondInternal(ctx, "Could not add reply.")
		return
	}

	ctx.JSON(http.StatusOK, r)
}

func (h *DiscussionsHandler) Like(ctx *gin.Context) {
	h.discussions.Like(ctx.Param("id"))

	ctx.JSON(http.StatusOK, gin.H{"message": "Liked"})
}
