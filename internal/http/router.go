package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/studymatehq/studymate/internal/config"
	"github.com/studymatehq/studymate/internal/http/handlers"
	"github.com/studymatehq/studymate/internal/http/middlewares"
	"github.com/studymatehq/studymate/internal/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxRequestBody = 25 << 20 // multipart PDF uploads included

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Users       *handlers.UsersHandler
	Courses     *handlers.CoursesHandler
	Assignments *handlers.AssignmentsHandler
	StudyPlans  *handlers.StudyPlansHandler
	Discussions *handlers.DiscussionsHandler
	Tutor       *handlers.TutorHandler
	Progress    *handlers.ProgressHandler
	Health      *handlers.HealthHandler
}

func NewRouter(cfg config.Config, log *slog.Logger, prom *observability.Prom, reg *prometheus.Registry, identity *middlewares.IdentityMiddleware, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(log))
	router.Use(middlewares.SecurityHeaders())
	router.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	router.Use(middlewares.MaxBodyBytes(maxRequestBody))
	router.Use(otelgin.Middleware("studymate-api"))
	router.Use(prom.GinHandleMiddleware())
	router.Use(identity.Identity())

	router.GET("/healthz", h.Health.Healthz)
	router.GET("/readyz", h.Health.Readyz)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middlewares.RequireJSON())
	{
		authGroup.POST("/signup", h.Auth.SignUp)
		authGroup.POST("/login", h.Auth.Login)
	}

	users := api.Group("/users")
	users.Use(middlewares.RequireJSON())
	{
		users.GET("/me", h.Users.Me)
		users.PUT("/me", h.Users.UpdateMe)
	}

	courses := api.Group("/courses")
	{
		// the PDF upload is multipart, so it sits outside RequireJSON
		courses.POST("/:id/pdf", h.Courses.UploadPDF)
		courses.GET("/:id/pdf", h.Courses.DownloadPDF)

		jsonCourses := courses.Group("")
		jsonCourses.Use(middlewares.RequireJSON())
		{
			jsonCourses.GET("", h.Courses.List)
			jsonCourses.GET("/:id", h.Courses.Get)
			jsonCourses.POST("/:id/enroll", h.Courses.Enroll)
			jsonCourses.GET("/:id/lessons", h.Courses.Lessons)
			jsonCourses.POST("/:id/lessons/:lessonId/complete", h.Courses.CompleteLesson)
		}
	}

	assignments := api.Group("/assignments")
	assignments.Use(middlewares.RequireJSON())
	{
		assignments.GET("", h.Assignments.List)
		assignments.GET("/:id", h.Assignments.Get)
		assignments.POST("/:id/submit", h.Assignments.Submit)
	}

	plans := api.Group("/study-plans")
	plans.Use(middlewares.RequireJSON())
	{
		plans.GET("", h.StudyPlans.List)
		plans.POST("", h.StudyPlans.Create)
		plans.PUT("/:id", h.StudyPlans.Update)
		plans.DELETE("/:id", h.StudyPlans.Delete)
	}

	discussions := api.Group("/discussions")
	discussions.Use(middlewares.RequireJSON())
	{
		discussions.GET("", h.Discussions.List)
		discussions.POST("", h.Discussions.Create)
		discussions.POST("/:id/replies", h.Discussions.Reply)
		discussions.POST("/:id/like", h.Discussions.Like)
	}

	tutorGroup := api.Group("/ai-tutor")
	tutorGroup.Use(middlewares.RequireJSON())
	{
		tutorGroup.GET("/sessions", h.Tutor.ListSessions)
		tutorGroup.POST("/sessions", h.Tutor.CreateSession)
		tutorGroup.GET("/sessions/:id", h.Tutor.GetSession)
		tutorGroup.POST("/sessions/:id/messages", h.Tutor.SendMessage)
	}

	progressGroup := api.Group("/progress")
	progressGroup.Use(middlewares.RequireJSON())
	{
		progressGroup.GET("/me", h.Progress.Mine)
		progressGroup.GET("/dashboard-stats", h.Progress.DashboardStats)
		progressGroup.GET("/courses/:courseId", h.Progress.CourseProgress)
		progressGroup.POST("/study-session", h.Progress.RecordStudySession)
	}

	return router
}
