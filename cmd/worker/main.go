package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/studymatehq/studymate/internal/config"
	"github.com/studymatehq/studymate/internal/notifications"
	"github.com/studymatehq/studymate/internal/observability"
	"github.com/studymatehq/studymate/internal/queue/redisclient"
	"github.com/studymatehq/studymate/internal/queue/worker"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)

	defer stop()

	queue := redisclient.New(redisclient.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	defer queue.Close()

	pingCtx, pingCancel := config.WithTimeout(5 * time.Second)

	if err := queue.Ping(pingCtx); err != nil {
		log.Error("redis connect failed", "err", err)
		pingCancel()
		os.Exit(1)
	}

	pingCancel()

	notifier := notifications.NewProtectedNotifier(
		notifications.NewLogNotifier(log),
		notifications.ProtectedNotifierConfig{
			Timeout:          5 * time.Second,
			FailureThreshold: 5,
			Cooldown:         30 * time.Second,
			HalfOpenMaxCalls: 2,
		},
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	host, _ := os.Hostname()
	workerID := host + "-" + strconv.Itoa(os.Getpid())

	w := worker.New(worker.Config{
		WorkerID:      workerID,
		PollWait:      5 * time.Second,
		ShutdownGrace: 10 * time.Second,
	}, queue, notifier, log, prom)

	// health + metrics sidecar listener
	mux := http.NewServeMux()
	mux.Handle("/", w.HealthHandler())
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	healthSrv := &http.Server{
		Addr:              ":9091",
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("health listener failed", "err", err)
		}
	}()

	log.Info("worker started", "worker_id", workerID)

	if err := w.Run(ctx); err != nil {
		log.Error("worker stopped with error", "err", err)
	}

	sctx, scancel := config.WithTimeout(5 * time.Second)
	defer scancel()

	_ = healthSrv.Shutdown(sctx)

	log.Info("worker shutdown complete")
}
