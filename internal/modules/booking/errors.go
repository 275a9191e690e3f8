package booking

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrPropertyNotFound    = errors.New("property not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrPropertyNotBookable = errors.New("property is not accepting bookings")
	ErrDatesUnavailable    = errors.New("dates not available")
	ErrTooManyGuests       = errors.New("guest count exceeds property capacity")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrCheckoutNotReached  = errors.New("checkout date not reached")
)
