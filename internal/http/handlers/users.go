package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studymatehq/studymate/internal/config"
	"github.com/studymatehq/studymate/internal/domain/user"
	"github.com/studymatehq/studymate/internal/http/middlewares"
	"github.com/studymatehq/studymate/internal/repo/postgres"
)

type ProfileStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	UpdateProfile(ctx context.Context, u user.User) (user.User, error)
}

type UsersHandler struct {
	users ProfileStore
}

func NewUsersHandler(users ProfileStore) *UsersHandler {
	return &UsersHandler{users: users}
}

type UpdateProfileRequest struct {
	Username       *string `json:"username" binding:"omitempty,min=1,max=64"`
	FullName       *string `json:"fullName" binding:"omitempty,max=128"`
	ProfilePicture *string `json:"profilePicture" binding:"omitempty,max=2048"`
}

func (h *UsersHandler) currentUser(ctx *gin.Context) (user.User, bool) {
	subject, ok := middlewares.SubjectFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Authentication required.")
		return user.User{}, false
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByEmail(cctx, subject)

	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			RespondNotFound(ctx, "User not found.")
			return user.User{}, false
		}

		RespondInternal(ctx, "Could not load user.")
		return user.User{}, false
	}

	return u, true
}

func (h *UsersHandler) Me(ctx *gin.Context) {
	u, ok := h.currentUser(ctx)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, u.Profile())
}

func (h *UsersHandler) UpdateMe(ctx *gin.Context) {
	u, ok := h.currentUser(ctx)

	if !ok {
		return
	}

	var req UpdateProfileRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.Username != nil {
		u.Username = *req.Username
	}

	if req.FullName != nil {
		u.FullName = *req.FullName
	}

	if req.ProfilePicture != nil {
		u.ProfilePicture = *req.ProfilePicture
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.UpdateProfile(cctx, u)

	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			RespondNotFound(ctx, "User not found.")
			return
		}

		RespondInternal(ctx, "Could not update profile.")
		return
	}

	ctx.JSON(http.StatusOK, u.Profile())
}
