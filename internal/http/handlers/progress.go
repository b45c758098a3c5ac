package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studymatehq/studymate/internal/domain/progress"
	"github.com/studymatehq/studymate/internal/http/middlewares"
)

// Progress endpoints serve placeholder numbers until lesson completion events
// feed a real aggregate.
type ProgressHandler struct{}

func NewProgressHandler() *ProgressHandler {
	return &ProgressHandler{}
}

func demoProgress(userID string) progress.UserProgress {
	return progress.UserProgress{
		UserID:                userID,
		TotalCoursesEnrolled:  3,
		CompletedCourses:      1,
		TotalLessonsCompleted: 14,
		TotalStudyHours:       26,
		CurrentStreak:         4,
		LongestStreak:         9,
		AverageScore:          87.5,
	}
}

func (h *ProgressHandler) Mine(ctx *gin.Context) {
	subject, ok := middlewares.SubjectFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Authentication required.")
		return
	}

	ctx.JSON(http.StatusOK, demoProgress(subject))
}

func (h *ProgressHandler) DashboardStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"weeklyStudyHours":  []int{2, 3, 1, 4, 2, 5, 3},
		"upcomingDeadlines": 2,
		"activePlans":       1,
		"unreadDiscussions": 3,
	})
}

func (h *ProgressHandler) CourseProgress(ctx *gin.Context) {
	courseID := ctx.Param("courseId")

	ctx.JSON(http.StatusOK, gin.H{
		"courseId":         courseID,
		"completedLessons": 4,
		"totalLessons":     6,
		"percentComplete":  66.7,
		"lastAccessedAt":   time.Now().UTC().Format(time.RFC3339),
	})
}

type StudySessionRequest struct {
	CourseID        string `json:"courseId"`
	DurationMinutes int    `json:"durationMinutes" binding:"omitempty,min=1"`
}

func (h *ProgressHandler) RecordStudySession(ctx *gin.Context) {
	var req StudySessionRequest

	if !BindJSON(ctx, &req) {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Study session recorded"})
}
