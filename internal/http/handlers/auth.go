package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/studymatehq/studymate/internal/config"
	"github.com/studymatehq/studymate/internal/domain/user"
	"github.com/studymatehq/studymate/internal/repo/postgres"
	"github.com/studymatehq/studymate/internal/security"
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u user.User) (user.User, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

type TokenIssuer interface {
	Issue(subject, role, uid string) (string, error)
}

type AuthHandler struct {
	users UserStore
	jwt   TokenIssuer
	cfg   config.Config
}

func NewAuthHandler(users UserStore, jwt TokenIssuer, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		users: users,
		jwt:   jwt,
		cfg:   cfg,
	}
}

// The auth endpoints keep the flat {token, user, message} contract the web
// client was built against; they do not use the error envelope.

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req SignUpRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	if req.Email == "" || req.Password == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	taken, err := h.users.ExistsByEmail(cctx, req.Email)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	if taken {
		ctx.JSON(http.StatusConflict, gin.H{"message": "Email already in use"})
		return
	}

	username := req.Username

	if username == "" {
		username, _, _ = strings.Cut(req.Email, "@")
	}

	hash, err := security.HashPassword(req.Password, h.cfg.BcryptCost)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	u := user.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Username:     username,
		FullName:     req.FullName,
		PasswordHash: hash,
		Role:         user.RoleStudent,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	u, err = h.users.Create(cctx, u)

	if err != nil {
		// the uniqueness check above races with concurrent signups
		if errors.Is(err, postgres.ErrEmailAlreadyUsed) {
			ctx.JSON(http.StatusConflict, gin.H{"message": "Email already in use"})
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	token, err := h.jwt.Issue(u.Email, u.Role, u.ID)

	if err != nil {
		RespondInternal(ctx, "Could not generate token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token":   token,
		"user":    u.Profile(),
		"message": "Signup successful",
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	// unknown email and wrong password produce the exact same response so
	// callers cannot probe which emails are registered

	foundUser, err := h.users.GetByEmail(cctx, req.Email)

	if errors.Is(err, postgres.ErrUserNotFound) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	if err != nil {
		RespondInternal(ctx, "Could not look up user")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	// isActive is stored but not enforced; deactivation is an admin-side
	// flag with no login consequence yet

	now := time.Now().UTC()

	if err := h.users.TouchLastLogin(cctx, foundUser.ID, now); err != nil {
		RespondInternal(ctx, "Could not update login timestamp")
		return
	}

	foundUser.LastLogin = &now

	token, err := h.jwt.Issue(foundUser.Email, foundUser.Role, foundUser.ID)

	if err != nil {
		RespondInternal(ctx, "Could not generate token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token":   token,
		"user":    foundUser.Profile(),
		"message": "Login successful",
	})
}
