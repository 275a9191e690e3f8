package booking

import (
	"context"

	"staybook/internal/repository"
)

// Store is the transactional persistence surface the booking service runs
// on. The gorm implementation lives in internal/repository.
type Store = repository.BookingStore

// ConfirmationDispatcher hands a confirmed booking to the asynchronous
// notification pipeline. Called strictly after the admission transaction has
// committed; its failures never affect booking state.
type ConfirmationDispatcher interface {
	DispatchConfirmation(ctx context.Context, bookingID int64, recipientEmail string) error
}
