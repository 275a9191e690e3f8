package domain

import "time"

type PropertyStatus string

const (
	PropertyAvailable   PropertyStatus = "available"
	PropertyUnavailable PropertyStatus = "unavailable"
	PropertyArchived    PropertyStatus = "archived"
)

func (s PropertyStatus) Valid() bool {
	switch s {
	case PropertyAvailable, PropertyUnavailable, PropertyArchived:
		return true
	}
	return false
}

type Property struct {
	ID          int64          `json:"id"`
	HostID      int64          `json:"host_id" validate:"required"`
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	Address     string         `json:"address"`
	City        string         `json:"city"`
	Beds        int            `json:"beds" validate:"gte=1,lte=10"`
	Price       float64        `json:"price" validate:"gte=0"`
	Status      PropertyStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Bookable reports whether the property admits new bookings at all.
// Date-range availability is a separate check.
func (p *Property) Bookable() bool { return p.Status == PropertyAvailable }
