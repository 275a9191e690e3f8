package property

import "time"

type CreatePropertyRequest struct {
	Title       string  `json:"title" binding:"required,min=3,max=200"`
	Description string  `json:"description"`
	Address     string  `json:"address" binding:"required"`
	City        string  `json:"city" binding:"required"`
	Beds        int     `json:"beds" binding:"required,gte=1,lte=10"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

type UpdatePropertyRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=3,max=200"`
	Description *string  `json:"description"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	Beds        *int     `json:"beds" binding:"omitempty,gte=1,lte=10"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Status      *string  `json:"status"`
}

type PropertyResponse struct {
	ID          int64     `json:"id"`
	HostID      int64     `json:"host_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Beds        int       `json:"beds"`
	Price       float64   `json:"price"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListQuery struct {
	City     string   `form:"city"`
	MinPrice *float64 `form:"min_price"`
	MaxPrice *float64 `form:"max_price"`
	Beds     int      `form:"beds"`
	HostID   int64    `form:"host_id"`
	Limit    int      `form:"limit"`
	Offset   int      `form:"offset"`
}
