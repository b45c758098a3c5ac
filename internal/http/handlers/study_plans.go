package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studymatehq/studymate/internal/domain/plan"
	"github.com/studymatehq/studymate/internal/http/middlewares"
	"github.com/studymatehq/studymate/internal/repo/memory"
)

type StudyPlansHandler struct {
	plans *memory.StudyPlansRepo
}

func NewStudyPlansHandler(plans *memory.StudyPlansRepo) *StudyPlansHandler {
	return &StudyPlansHandler{plans: plans}
}

func (h *StudyPlansHandler) List(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.plans.List())
}

func (h *StudyPlansHandler) Create(ctx *gin.Context) {
	var req plan.CreatePlanRequest

	if !BindJSON(ctx, &req) {
		return
	}

	userID, _ := middlewares.SubjectFromContext(ctx)

	if userID == "" {
		userID = "demo-user"
	}

	ctx.JSON(http.StatusOK, h.plans.Create(userID, req))
}

func (h *StudyPlansHandler) Update(ctx *gin.Context) {
	var req plan.UpdatePlanRequest

	if !BindJSON(ctx, &req) {
		return
	}

	p, err := h.plans.Update(ctx.Param("id"), req)

	if err != nil {
		if errors.Is(err, memory.ErrNotFound) {
			RespondNotFound(ctx, "Study plan not found.")
			return
		}

		RespondInternal(ctx, "Could not update study plan.")
		return
	}

	ctx.JSON(http.StatusOK, p)
}

func (h *StudyPlansHandler) Delete(ctx *gin.Context) {
	// delete is idempotent; removing a missing plan still reports success
	h.plans.Delete(ctx.Param("id"))

	ctx.JSON(http.StatusOK, gin.H{"message": "Study plan deleted"})
}
