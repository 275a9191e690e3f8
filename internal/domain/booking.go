package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Terminal reports whether no further transition may leave the status.
func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

// Blocking reports whether a booking in this status occupies its date range.
// Cancelled and completed bookings never block new admissions.
func (s BookingStatus) Blocking() bool {
	return s == BookingPending || s == BookingConfirmed
}

type Booking struct {
	ID          int64         `json:"id"`
	PropertyID  int64         `json:"property_id" validate:"required"`
	GuestID     int64         `json:"guest_id" validate:"required"`
	CheckIn     time.Time     `json:"check_in" validate:"required"`
	CheckOut    time.Time     `json:"check_out" validate:"required"`
	Guests      int           `json:"guests" validate:"gte=1"`
	TotalPrice  float64       `json:"total_price" validate:"gte=0"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`
}

// Nights returns the number of nights in the half-open [check_in, check_out)
// range. Both endpoints are expected to be midnight-normalized dates.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// Overlaps applies the half-open interval test: two bookings share at least
// one night iff a.check_in < b.check_out && a.check_out > b.check_in.
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return b.CheckIn.Before(checkOut) && b.CheckOut.After(checkIn)
}
