package notify

import (
	"context"
	"log/slog"
)

// Enqueuer is the queue side the dispatcher needs.
type Enqueuer interface {
	Enqueue(ctx context.Context, task ConfirmationTask) error
}

// Dispatcher hands confirmation work to the queue. Dispatch failures are
// reported to the caller; booking state is never touched from here.
type Dispatcher struct {
	queue Enqueuer
	log   *slog.Logger
}

func NewDispatcher(queue Enqueuer, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{queue: queue, log: log}
}

func (d *Dispatcher) DispatchConfirmation(ctx context.Context, bookingID int64, recipientEmail string) error {
	task := NewConfirmationTask(bookingID, recipientEmail)
	if err := d.queue.Enqueue(ctx, task); err != nil {
		return err
	}
	d.log.Info("confirmation task enqueued",
		"task_id", task.TaskID,
		"booking_id", bookingID,
	)
	return nil
}
