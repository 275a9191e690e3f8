package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"staybook/internal/notify"
	"staybook/internal/repository"
)

// ConfirmationSource loads the data a confirmation document needs.
type ConfirmationSource interface {
	GetConfirmation(ctx context.Context, bookingID int64) (*repository.BookingConfirmation, error)
}

// Queue is the consumer side of the task queue.
type Queue interface {
	Dequeue(ctx context.Context, timeout time.Duration) (*notify.ConfirmationTask, error)
	Retry(ctx context.Context, task notify.ConfirmationTask) error
	DeadLetter(ctx context.Context, task notify.ConfirmationTask) error
}

// Worker consumes confirmation tasks: render the document, then send the
// email. A task that fails at either step is retried whole, up to
// maxAttempts, then dead-lettered. Delivery is at-least-once; booking state
// is never modified here.
type Worker struct {
	queue       Queue
	source      ConfirmationSource
	mailer      Mailer
	log         *slog.Logger
	maxAttempts int
	retryDelay  time.Duration
	pollTimeout time.Duration
}

func New(queue Queue, source ConfirmationSource, mailer Mailer, log *slog.Logger, maxAttempts int, retryDelay time.Duration) *Worker {
	if log == nil {
		log = slog.Default()
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Worker{
		queue:       queue,
		source:      source,
		mailer:      mailer,
		log:         log,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		pollTimeout: 5 * time.Second,
	}
}

// Run consumes tasks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.log.Info("notification worker started", "max_attempts", w.maxAttempts)
	for {
		select {
		case <-ctx.Done():
			w.log.Info("notification worker stopped")
			return ctx.Err()
		default:
		}

		task, err := w.queue.Dequeue(ctx, w.pollTimeout)
		if err != nil {
			if errors.Is(err, notify.ErrQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.log.Error("dequeue failed", "error", err)
			sleep(ctx, w.retryDelay)
			continue
		}

		w.Process(ctx, *task)
	}
}

// Process handles a single task end to end.
func (w *Worker) Process(ctx context.Context, task notify.ConfirmationTask) {
	log := w.log.With("task_id", task.TaskID, "booking_id", task.BookingID, "attempt", task.Attempts+1)

	if err := w.handle(ctx, task); err != nil {
		if task.Attempts+1 >= w.maxAttempts {
			log.Error("task exhausted retries, dead-lettering", "error", err)
			if dlErr := w.queue.DeadLetter(ctx, task); dlErr != nil {
				log.Error("dead-letter failed", "error", dlErr)
			}
			return
		}

		log.Warn("task failed, retrying", "error", err)
		sleep(ctx, w.retryDelay)
		if rErr := w.queue.Retry(ctx, task); rErr != nil {
			log.Error("retry enqueue failed", "error", rErr)
		}
		return
	}

	log.Info("confirmation email sent")
}

func (w *Worker) handle(ctx context.Context, task notify.ConfirmationTask) error {
	conf, err := w.source.GetConfirmation(ctx, task.BookingID)
	if err != nil {
		return err
	}

	pdf, err := RenderConfirmationPDF(conf)
	if err != nil {
		return err
	}

	to := task.RecipientEmail
	if to == "" {
		to = conf.GuestEmail
	}
	return w.mailer.SendConfirmation(to, conf, pdf)
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
