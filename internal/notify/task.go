package notify

import (
	"time"

	"github.com/google/uuid"
)

// ConfirmationTask is the unit of work carried over the queue. Ordering
// inside a task is fixed: the worker renders the confirmation document
// first and only then sends the email.
type ConfirmationTask struct {
	TaskID         string    `json:"task_id"`
	BookingID      int64     `json:"booking_id"`
	RecipientEmail string    `json:"recipient_email"`
	Attempts       int       `json:"attempts"`
	EnqueuedAt     time.Time `json:"enqueued_at"`
}

func NewConfirmationTask(bookingID int64, recipientEmail string) ConfirmationTask {
	return ConfirmationTask{
		TaskID:         uuid.NewString(),
		BookingID:      bookingID,
		RecipientEmail: recipientEmail,
		EnqueuedAt:     time.Now().UTC(),
	}
}
