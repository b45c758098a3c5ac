package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/studymatehq/studymate/internal/jobs"
	"github.com/studymatehq/studymate/internal/notifications"
	"github.com/studymatehq/studymate/internal/observability"
	"github.com/studymatehq/studymate/internal/queue/redisclient"
)

type Queue interface {
	Enqueue(ctx context.Context, j jobs.Job) error
	Dequeue(ctx context.Context, wait time.Duration) (jobs.Job, error)
}

type Config struct {
	WorkerID      string
	PollWait      time.Duration
	ShutdownGrace time.Duration
}

type Worker struct {
	cfg      Config
	queue    Queue
	notifier notifications.Notifier
	log      *slog.Logger
	prom     *observability.Prom

	readyMu sync.RWMutex
	ready   bool
}

func New(cfg Config, queue Queue, notifier notifications.Notifier, log *slog.Logger, prom *observability.Prom) *Worker {
	if cfg.PollWait <= 0 {
		cfg.PollWait = 5 * time.Second
	}

	if cfg.ShutdownGrace <= 0 {
		cfg.ShutdownGrace = 10 * time.Second
	}

	return &Worker{
		cfg:      cfg,
		queue:    queue,
		notifier: notifier,
		log:      log,
		prom:     prom,
	}
}

// Run consumes jobs until the context is cancelled.

func (w *Worker) Run(ctx context.Context) error {
	w.setReady(true)
	defer w.setReady(false)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker received shutdown signal")
			return nil
		default:
		}

		processed, err := w.ProcessOne(ctx)

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			w.log.Error("dequeue error", "err", err)

			// brief pause so a broken redis doesn't spin the loop
			select {
			case <-time.After(2 * time.Second):
			case <-ctx.Done():
				return nil
			}
		}

		_ = processed
	}
}

// ProcessOne pulls and executes a single job. Returns false when the queue
// was idle for the poll window.

func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	j, err := w.queue.Dequeue(ctx, w.cfg.PollWait)

	if err != nil {
		if errors.Is(err, redisclient.ErrEmpty) {
			return false, nil
		}

		return false, err
	}

	start := time.Now()

	if w.prom != nil {
		w.prom.JobsInFlight.Inc()
	}

	execErr := w.execute(ctx, j)

	if w.prom != nil {
		w.prom.JobsInFlight.Dec()
	}

	result := "done"

	if execErr != nil {
		result = w.handleFailure(j, execErr)
	}

	if w.prom != nil {
		w.prom.JobResults.WithLabelValues(string(j.Type), result).Inc()
		w.prom.JobDuration.WithLabelValues(string(j.Type), result).Observe(time.Since(start).Seconds())
	}

	return true, nil
}

func (w *Worker) execute(ctx context.Context, j jobs.Job) error {
	payload, err := jobs.DecodePayload(j)

	if err != nil {
		return err
	}

	switch p := payload.(type) {
	case jobs.SubmissionReceiptPayload:
		return w.notifier.SendSubmissionReceipt(ctx, notifications.SendSubmissionReceiptInput{
			Email:        p.Subject,
			AssignmentID: p.AssignmentID,
			CourseID:     p.CourseID,
			SubmittedAt:  j.CreatedAt.Format(time.RFC3339),
		})

	case jobs.StudyReminderPayload:
		// reminders are not delivered yet; drop silently
		w.log.Debug("skipping study reminder", "plan", p.PlanID)
		return nil

	default:
		return jobs.ErrInvalidJobType
	}
}

// handleFailure re-enqueues with backoff until MaxTries is exhausted.
// Returns the metric result label.

func (w *Worker) handleFailure(j jobs.Job, execErr error) string {
	j.Attempts++

	if errors.Is(execErr, jobs.ErrInvalidJobType) || errors.Is(execErr, jobs.ErrInvalidJobPayload) {
		// undecodable jobs never succeed on retry
		w.log.Error("dropping malformed job", "job", j.ID, "err", execErr)
		return "failed"
	}

	if j.Attempts >= j.MaxTries {
		w.log.Error("job exhausted retries", "job", j.ID, "type", j.Type, "attempts", j.Attempts, "err", execErr)
		return "failed"
	}

	delay := ExponentialBackoff(j.Attempts - 1)

	w.log.Warn("job failed, scheduling retry",
		"job", j.ID, "type", j.Type, "attempt", j.Attempts, "delay", delay.String(), "err", execErr)

	retry := j

	time.AfterFunc(delay, func() {
		enqCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := w.queue.Enqueue(enqCtx, retry); err != nil {
			w.log.Error("re-enqueue failed, job lost", "job", retry.ID, "err", err)
		}
	})

	return "retry"
}

func (w *Worker) setReady(v bool) {
	w.readyMu.Lock()
	w.ready = v
	w.readyMu.Unlock()
}
