package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studymatehq/studymate/internal/http/middlewares"
	"github.com/studymatehq/studymate/internal/repo/memory"
)

type TextGenerator interface {
	GenerateText(ctx context.Context, userMessage string) string
}

type TutorHandler struct {
	sessions *memory.TutorSessionsRepo
	ai       TextGenerator
}

func NewTutorHandler(sessions *memory.TutorSessionsRepo, ai TextGenerator) *TutorHandler {
	return &TutorHandler{
		sessions: sessions,
		ai:       ai,
	}
}

type CreateSessionRequest struct {
	Subject string `json:"subject" binding:"required,min=1,max=100"`
}

type SendMessageRequest struct {
	Message string `json:"message" binding:"required,min=1,max=4000"`
}

func (h *TutorHandler) ListSessions(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.sessions.List())
}

func (h *TutorHandler) CreateSession(ctx *gin.Context) {
	var req CreateSessionRequest

	if !BindJSON(ctx, &req) {
		return
	}

	userID, _ := middlewares.SubjectFromContext(ctx)

	if userID == "" {
		userID = "demo-user"
	}

	ctx.JSON(http.StatusOK, h.sessions.Create(userID, req.Subject))
}

func (h *TutorHandler) GetSession(ctx *gin.Context) {
	s, err := h.sessions.GetByID(ctx.Param("id"))

	if err != nil {
		RespondNotFound(ctx, "Session not found.")
		return
	}

	ctx.JSON(http.StatusOK, s)
}

func (h *TutorHandler) SendMessage(ctx *gin.Context) {
	var req SendMessageRequest

	if !BindJSON(ctx, &req) {
		return
	}

	sessionID := ctx.Param("id")

	if _, err := h.sessions.AppendMessage(sessionID, "user", req.Message); err != nil {
		if errors.Is(err, memory.ErrNotFound) {
			RespondNotFound(ctx, "Session not found.")
			return
		}

		RespondInternal(ctx, "Could not record message.")
		return
	}

	// generation can be slow; cap it independently of the request deadline
	actx, cancel := context.WithTimeout(ctx.Request.Context(), 30*time.Second)
	defer cancel()

	answer := h.ai.GenerateText(actx, req.Message)

	reply, err := h.sessions.AppendMessage(sessionID, "assistant", answer)

	if err != nil {
		RespondInternal(ctx, "Could not record reply.")
		return
	}

	ctx.JSON(http.StatusOK, reply)
}
