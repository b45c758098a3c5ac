package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studymatehq/studymate/internal/cache"
	"github.com/studymatehq/studymate/internal/config"
	"github.com/studymatehq/studymate/internal/domain/course"
	"github.com/studymatehq/studymate/internal/repo/memory"
	"github.com/studymatehq/studymate/internal/repo/postgres"
	"github.com/studymatehq/studymate/internal/utils"
)

const maxPDFBytes = 20 << 20 // 20 MiB

type CourseStore interface {
	List(ctx context.Context, category string) ([]course.Course, error)
	Count(ctx context.Context, category string) (int, error)
	GetByID(ctx context.Context, id string) (course.Course, error)
}

type CoursePDFStore interface {
	Upsert(ctx context.Context, p course.PDF) error
	GetByCourseID(ctx context.Context, courseID string) (course.PDF, error)
}

type CoursesHandler struct {
	courses CourseStore
	pdfs    CoursePDFStore
	lessons *memory.LessonsRepo
	cache   *cache.Cache
	log     *slog.Logger
}

func NewCoursesHandler(courses CourseStore, pdfs CoursePDFStore, lessons *memory.LessonsRepo, c *cache.Cache, log *slog.Logger) *CoursesHandler {
	return &CoursesHandler{
		courses: courses,
		pdfs:    pdfs,
		lessons: lessons,
		cache:   c,
		log:     log,
	}
}

func parsePaging(ctx *gin.Context) (page, size int) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "0"))

	if err != nil || page < 0 {
		page = 0
	}

	size, err = strconv.Atoi(ctx.DefaultQuery("size", "20"))

	if err != nil || size < 1 || size > 100 {
		size = 20
	}

	return page, size
}

func (h *CoursesHandler) List(ctx *gin.Context) {
	page, size := parsePaging(ctx)
	category := ctx.Query("category")

	key := utils.BuildCoursesListCacheKey(page, size, category)

	if cached, ok := h.cache.Get(key); ok {
		if resp, ok := cached.(PageResponse[course.Course]); ok {
			ctx.JSON(http.StatusOK, resp)
			return
		}
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	all, err := h.courses.List(cctx, category)

	if err != nil {
		RespondInternal(ctx, "Could not list courses.")
		return
	}

	total, err := h.courses.Count(cctx, category)

	if err != nil {
		RespondInternal(ctx, "Could not list courses.")
		return
	}

	// page/size slicing happens here rather than in SQL; course catalogs
	// are small enough that fetch-all keeps the repo simple
	start := page * size

	if start > len(all) {
		start = len(all)
	}

	end := start + size

	if end > len(all) {
		end = len(all)
	}

	resp := PageResponse[course.Course]{
		Content:       all[start:end],
		TotalElements: int64(total),
	}

	h.cache.Set(key, resp)

	ctx.JSON(http.StatusOK, resp)
}

func (h *CoursesHandler) Get(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	c, err := h.courses.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, postgres.ErrCourseNotFound) {
			RespondNotFound(ctx, "Course not found.")
			return
		}

		RespondInternal(ctx, "Could not load course.")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, c)
}

// Enroll acknowledges enrollment without persisting it; per-user rosters are
// tracked client-side today.
func (h *CoursesHandler) Enroll(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	if _, err := h.courses.GetByID(cctx, id); err != nil {
		if errors.Is(err, postgres.ErrCourseNotFound) {
			RespondNotFound(ctx, "Course not found.")
			return
		}

		RespondInternal(ctx, "Could not enroll.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Enrolled successfully"})
}

func (h *CoursesHandler) Lessons(ctx *gin.Context) {
	id := ctx.Param("id")

	ctx.JSON(http.StatusOK, h.lessons.ListByCourse(id))
}

func (h *CoursesHandler) CompleteLesson(ctx *gin.Context) {
	courseID := ctx.Param("id")
	lessonID := ctx.Param("lessonId")

	if err := h.lessons.Complete(courseID, lessonID); err != nil {
		RespondNotFound(ctx, "Lesson not found.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Lesson marked as completed"})
}

func (h *CoursesHandler) UploadPDF(ctx *gin.Context) {
	courseID := ctx.Param("id")

	file, header, err := ctx.Request.FormFile("file")

	if err != nil {
		RespondBadRequest(ctx, "A PDF file is required in the 'file' field.", nil)
		return
	}

	defer file.Close()

	if header.Size > maxPDFBytes {
		RespondError(ctx, http.StatusRequestEntityTooLarge, "payload_too_large",
			fmt.Sprintf("File exceeds the %d byte limit.", maxPDFBytes), nil)
		return
	}

	contentType := header.Header.Get("Content-Type")

	if !strings.EqualFold(contentType, "application/pdf") {
		RespondBadRequest(ctx, "Only application/pdf uploads are accepted.", nil)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxPDFBytes+1))

	if err != nil {
		RespondInternal(ctx, "Could not read upload.")
		return
	}

	if len(data) > maxPDFBytes {
		RespondError(ctx, http.StatusRequestEntityTooLarge, "payload_too_large",
			fmt.Sprintf("File exceeds the %d byte limit.", maxPDFBytes), nil)
		return
	}

	cctx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()

	p := course.PDF{
		CourseID:    courseID,
		FileName:    header.Filename,
		ContentType: "application/pdf",
		Data:        data,
		UploadedAt:  time.Now().UTC(),
	}

	if err := h.pdfs.Upsert(cctx, p); err != nil {
		if errors.Is(err, postgres.ErrCourseNotFound) {
			RespondNotFound(ctx, "Course not found.")
			return
		}

		RespondInternal(ctx, "Could not store PDF.")
		return
	}

	// the upload bumps the course's updated_at, so cached listings are stale
	h.cache.Clear()

	h.log.Info("course pdf stored", "course_id", courseID, "bytes", len(data))

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "PDF uploaded successfully",
		"fileName": p.FileName,
	})
}

func (h *CoursesHandler) DownloadPDF(ctx *gin.Context) {
	courseID := ctx.Param("id")

	cctx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()

	p, err := h.pdfs.GetByCourseID(cctx, courseID)

	if err != nil {
		if errors.Is(err, postgres.ErrPDFNotFound) {
			RespondNotFound(ctx, "No PDF uploaded for this course.")
			return
		}

		RespondInternal(ctx, "Could not load PDF.")
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", p.FileName))
	ctx.Data(http.StatusOK, p.ContentType, p.Data)
}
