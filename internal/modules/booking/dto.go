package booking

import "time"

type PlaceBookingRequest struct {
	PropertyID int64  `json:"property_id" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`
	Guests     int    `json:"guests" binding:"required,gte=1"`
}

type BookingResponse struct {
	ID          int64      `json:"id"`
	PropertyID  int64      `json:"property_id"`
	GuestID     int64      `json:"guest_id"`
	CheckIn     string     `json:"check_in"`
	CheckOut    string     `json:"check_out"`
	Guests      int        `json:"guests"`
	TotalPrice  float64    `json:"total_price"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}
