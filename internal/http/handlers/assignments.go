package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studymatehq/studymate/internal/http/middlewares"
	"github.com/studymatehq/studymate/internal/jobs"
	"github.com/studymatehq/studymate/internal/repo/memory"
)

type JobEnqueuer interface {
	Enqueue(ctx context.Context, j jobs.Job) error
}

type AssignmentsHandler struct {
	assignments *memory.AssignmentsRepo
	queue       JobEnqueuer // nil when redis is not configured
	log         *slog.Logger
}

func NewAssignmentsHandler(assignments *memory.AssignmentsRepo, queue JobEnqueuer, log *slog.Logger) *AssignmentsHandler {
	return &AssignmentsHandler{
		assignments: assignments,
		queue:       queue,
		log:         log,
	}
}

func (h *AssignmentsHandler) List(ctx *gin.Context) {
	courseID := ctx.Query("courseId")

	ctx.JSON(http.StatusOK, h.assignments.List(courseID))
}

func (h *AssignmentsHandler) Get(ctx *gin.Context) {
	a, err := h.assignments.GetByID(ctx.Param("id"))

	if err != nil {
		RespondNotFound(ctx, "Assignment not found.")
		return
	}

	ctx.JSON(http.StatusOK, a)
}

func (h *AssignmentsHandler) Submit(ctx *gin.Context) {
	a, err := h.assignments.Submit(ctx.Param("id"))

	if err != nil {
		if errors.Is(err, memory.ErrNotFound) {
			RespondNotFound(ctx, "Assignment not found.")
			return
		}

		RespondInternal(ctx, "Could not submit assignment.")
		return
	}

	h.enqueueReceipt(ctx, a.ID, a.CourseID)

	ctx.JSON(http.StatusOK, a)
}

// enqueueReceipt queues the receipt notification. Queue failures only log;
// the submission itself already succeeded.
func (h *AssignmentsHandler) enqueueReceipt(ctx *gin.Context, assignmentID, courseID string) {
	if h.queue == nil {
		return
	}

	subject, _ := middlewares.SubjectFromContext(ctx)

	payload := jobs.SubmissionReceiptPayload{
		AssignmentID: assignmentID,
		CourseID:     courseID,
		Subject:      subject,
		RequestID:    requestIDFrom(ctx),
	}

	raw, err := jobs.EncodePayload(jobs.JobSubmissionReceipt, payload)

	if err != nil {
		h.log.Error("encode receipt payload", "error", err, "assignment_id", assignmentID)
		return
	}

	j, err := jobs.NewJob(jobs.JobSubmissionReceipt, raw)

	if err != nil {
		h.log.Error("build receipt job", "error", err, "assignment_id", assignmentID)
		return
	}

	qctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.queue.Enqueue(qctx, j); err != nil {
		h.log.Error("enqueue receipt job", "error", err, "assignment_id", assignmentID)
	}
}
