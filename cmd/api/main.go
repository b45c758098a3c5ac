package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/studymatehq/studymate/internal/ai"
	"github.com/studymatehq/studymate/internal/auth"
	"github.com/studymatehq/studymate/internal/cache"
	"github.com/studymatehq/studymate/internal/config"
	"github.com/studymatehq/studymate/internal/db"
	httpx "github.com/studymatehq/studymate/internal/http"
	"github.com/studymatehq/studymate/internal/http/handlers"
	"github.com/studymatehq/studymate/internal/http/middlewares"
	"github.com/studymatehq/studymate/internal/observability"
	"github.com/studymatehq/studymate/internal/queue/redisclient"
	"github.com/studymatehq/studymate/internal/repo/memory"
	"github.com/studymatehq/studymate/internal/repo/postgres"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	ctx, cancel := config.WithTimeout(30 * time.Second)

	shutdownTracer, err := observability.InitTracer(ctx, "studymate-api", cfg.OTLPEndpoint)

	if err != nil {
		log.Warn("tracer init failed, continuing without traces", "err", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("database connection failed", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	if err := db.EnsureAdminUser(ctx, pool, cfg); err != nil {
		log.Error("admin seed failed", "err", err)
		os.Exit(1)
	}

	usersRepo := postgres.NewUsersRepo(pool)
	coursesRepo := postgres.NewCoursesRepo(pool)
	pdfsRepo := postgres.NewCoursePDFsRepo(pool)

	sampleCourses := memory.SampleCourses(time.Now().UTC())

	if err := db.EnsureSampleCourses(ctx, coursesRepo, sampleCourses); err != nil {
		log.Error("course seed failed", "err", err)
		os.Exit(1)
	}

	cancel()

	stores := memory.NewStores()
	stores.Seed(sampleCourses)

	// token manager + identity gate
	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL())
	identity := middlewares.NewIdentityMiddleware(jwtManager)

	// the receipt queue is optional; without redis submissions still succeed
	var jobQueue handlers.JobEnqueuer

	if cfg.RedisAddr != "" {
		rc := redisclient.New(redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		pingCtx, pingCancel := config.WithTimeout(3 * time.Second)

		if err := rc.Ping(pingCtx); err != nil {
			log.Warn("redis unreachable, submission receipts disabled", "err", err)
		} else {
			jobQueue = rc
			defer rc.Close()
		}

		pingCancel()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	gemini := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)

	coursesCache := cache.New(60 * time.Second)

	h := httpx.Handlers{
		Auth:        handlers.NewAuthHandler(usersRepo, jwtManager, cfg),
		Users:       handlers.NewUsersHandler(usersRepo),
		Courses:     handlers.NewCoursesHandler(coursesRepo, pdfsRepo, stores.Lessons, coursesCache, log),
		Assignments: handlers.NewAssignmentsHandler(stores.Assignments, jobQueue, log),
		StudyPlans:  handlers.NewStudyPlansHandler(stores.StudyPlans),
		Discussions: handlers.NewDiscussionsHandler(stores.Discussions, usersRepo),
		Tutor:       handlers.NewTutorHandler(stores.TutorSessions, gemini),
		Progress:    handlers.NewProgressHandler(),
		Health: handlers.NewHealthHandler(func() error {
			pingCtx, pingCancel := config.WithTimeout(2 * time.Second)
			defer pingCancel()
			return pool.Ping(pingCtx)
		}),
	}

	router := httpx.NewRouter(cfg, log, prom, reg, identity, h)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		sctx, scancel := config.WithTimeout(10 * time.Second)
		defer scancel()

		if err := srv.Shutdown(sctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
			return
		}

		if err := shutdownTracer(sctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
