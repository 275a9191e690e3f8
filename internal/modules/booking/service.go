package booking

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"staybook/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	store  Store
	notifs ConfirmationDispatcher
	log    *slog.Logger
	now    func() time.Time
}

func NewService(store Store, notifs ConfirmationDispatcher, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:  store,
		notifs: notifs,
		log:    log,
		now:    time.Now,
	}
}

// PlaceBooking admits a new reservation. The property lock, the availability
// check and the insert run in one transaction, so two concurrent admissions
// for the same property serialize on the property row and at most one of two
// overlapping requests commits. Admissions for different properties never
// block each other.
//
// A successfully admitted booking is confirmed server-side immediately after
// commit and handed to the notification pipeline. The explicit Confirm
// operation stays available for bookings left pending.
func (s *Service) PlaceBooking(ctx context.Context, guestID int64, req PlaceBookingRequest) (*domain.Booking, error) {
	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		return nil, ErrValidation
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		return nil, ErrValidation
	}
	if !checkIn.Before(checkOut) {
		return nil, ErrValidation
	}
	if checkIn.Before(today(s.now())) {
		return nil, ErrValidation
	}
	if req.Guests < 1 {
		return nil, ErrValidation
	}

	var b *domain.Booking
	err = s.store.WithTx(ctx, func(tx Store) error {
		prop, err := tx.LockProperty(ctx, req.PropertyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPropertyNotFound
			}
			return err
		}

		if !prop.Bookable() {
			return ErrPropertyNotBookable
		}
		if req.Guests > prop.Beds {
			return ErrTooManyGuests
		}

		ok, err := tx.IsAvailable(ctx, prop.ID, checkIn, checkOut, 0)
		if err != nil {
			return err
		}
		if !ok {
			return ErrDatesUnavailable
		}

		nights := int(checkOut.Sub(checkIn).Hours() / 24)
		total := prop.Price * float64(req.Guests) * float64(nights)
		total = math.Round(total*100) / 100

		b = &domain.Booking{
			PropertyID: prop.ID,
			GuestID:    guestID,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Guests:     req.Guests,
			TotalPrice: total,
			Status:     domain.BookingPending,
		}
		if err := tx.Create(ctx, b); err != nil {
			// backstop: a DB-level no-overbooking constraint reports 23505
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return ErrDatesUnavailable
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.confirmAdmitted(ctx, b)
	return b, nil
}

// confirmAdmitted flips a freshly admitted booking to confirmed and hands it
// to the dispatcher. Runs after the admission transaction committed; any
// failure here leaves the booking pending and is only logged.
func (s *Service) confirmAdmitted(ctx context.Context, b *domain.Booking) {
	if err := s.store.UpdateStatus(ctx, b.ID, domain.BookingConfirmed, nil, domain.BookingPending); err != nil {
		s.log.Warn("booking left pending, confirmation failed", "booking_id", b.ID, "error", err)
		return
	}
	b.Status = domain.BookingConfirmed

	if s.notifs == nil {
		return
	}
	guest, err := s.store.GetUser(ctx, b.GuestID)
	if err != nil {
		s.log.Warn("confirmation email skipped, guest lookup failed", "booking_id", b.ID, "error", err)
		return
	}
	if err := s.notifs.DispatchConfirmation(ctx, b.ID, guest.Email); err != nil {
		s.log.Warn("confirmation dispatch failed", "booking_id", b.ID, "error", err)
	}
}

// Confirm transitions a pending booking to confirmed. Only the host owning
// the booking's property or an admin may confirm.
func (s *Service) Confirm(ctx context.Context, bookingID int64, actor domain.Actor) (*domain.Booking, error) {
	b, prop, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !isPropertyHost(actor, prop) {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingPending {
		return nil, ErrInvalidTransition
	}

	// the guarded write loses against a concurrent transition on the same row
	if err := s.store.UpdateStatus(ctx, b.ID, domain.BookingConfirmed, nil, domain.BookingPending); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	if s.notifs != nil {
		if guest, err := s.store.GetUser(ctx, b.GuestID); err == nil {
			if err := s.notifs.DispatchConfirmation(ctx, b.ID, guest.Email); err != nil {
				s.log.Warn("confirmation dispatch failed", "booking_id", b.ID, "error", err)
			}
		}
	}

	return s.store.GetByID(ctx, b.ID)
}

// Cancel transitions a pending or confirmed booking to cancelled. The guest
// who owns the booking, the host who owns the property, and admins may
// cancel. The freed range is immediately admittable again because the
// availability check ignores cancelled bookings.
func (s *Service) Cancel(ctx context.Context, bookingID int64, actor domain.Actor) (*domain.Booking, error) {
	b, prop, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !isPropertyHost(actor, prop) && !isBookingGuest(actor, b) {
		return nil, ErrForbidden
	}
	if !b.Status.Blocking() {
		return nil, ErrInvalidTransition
	}

	cancelledAt := s.now()
	if err := s.store.UpdateStatus(ctx, b.ID, domain.BookingCancelled, &cancelledAt, domain.BookingPending, domain.BookingConfirmed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}
	return s.store.GetByID(ctx, b.ID)
}

// Complete marks a confirmed booking completed once its checkout date has
// passed. Host or admin only.
func (s *Service) Complete(ctx context.Context, bookingID int64, actor domain.Actor) (*domain.Booking, error) {
	b, prop, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !isPropertyHost(actor, prop) {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingConfirmed {
		return nil, ErrInvalidTransition
	}
	if b.CheckOut.After(today(s.now())) {
		return nil, ErrCheckoutNotReached
	}

	if err := s.store.UpdateStatus(ctx, b.ID, domain.BookingCompleted, nil, domain.BookingConfirmed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}
	return s.store.GetByID(ctx, b.ID)
}

// GetBooking returns a booking visible to its guest, the property's host and
// admins.
func (s *Service) GetBooking(ctx context.Context, bookingID int64, actor domain.Actor) (*domain.Booking, error) {
	b, prop, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !isPropertyHost(actor, prop) && !isBookingGuest(actor, b) {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) ListMine(ctx context.Context, guestID int64, limit, offset int) ([]domain.Booking, int64, error) {
	return s.store.ListByGuest(ctx, guestID, limit, offset)
}

func (s *Service) load(ctx context.Context, bookingID int64) (*domain.Booking, *domain.Property, error) {
	b, err := s.store.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrBookingNotFound
		}
		return nil, nil, err
	}
	prop, err := s.store.GetProperty(ctx, b.PropertyID)
	if err != nil {
		return nil, nil, err
	}
	return b, prop, nil
}

func isPropertyHost(actor domain.Actor, p *domain.Property) bool {
	return p != nil && p.HostID == actor.ID
}

func isBookingGuest(actor domain.Actor, b *domain.Booking) bool {
	return b != nil && b.GuestID == actor.ID
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
