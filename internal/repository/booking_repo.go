package repository

import (
	"context"
	"time"

	"staybook/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingStore is the transactional persistence surface the booking service
// runs on. WithTx yields a store bound to one database transaction: the
// admission critical section (property lock, availability read, insert) must
// happen through that handle so all of it commits or aborts together.
type BookingStore interface {
	WithTx(ctx context.Context, fn func(tx BookingStore) error) error

	// LockProperty reads the property row under an exclusive row lock held
	// until the surrounding transaction ends. Outside a transaction it is a
	// plain read.
	LockProperty(ctx context.Context, propertyID int64) (*domain.Property, error)
	GetProperty(ctx context.Context, propertyID int64) (*domain.Property, error)

	// IsAvailable reports whether no pending/confirmed booking on the
	// property overlaps the half-open [checkIn, checkOut) range.
	// excludeBookingID (0 = none) leaves one booking out of the check.
	IsAvailable(ctx context.Context, propertyID int64, checkIn, checkOut time.Time, excludeBookingID int64) (bool, error)

	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)

	// UpdateStatus writes the new status, guarded: when from is non-empty
	// the write applies only while the current status is one of from, so a
	// transition decided on a stale read fails instead of re-opening a
	// terminal state. Reports gorm.ErrRecordNotFound when no row matched.
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus, cancelledAt *time.Time, from ...domain.BookingStatus) error
	ListByGuest(ctx context.Context, guestID int64, limit, offset int) ([]domain.Booking, int64, error)

	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

var _ BookingStore = (*BookingRepository)(nil)

type bookingModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	PropertyID  int64      `gorm:"column:property_id;index"`
	GuestID     int64      `gorm:"column:guest_id;index"`
	CheckIn     time.Time  `gorm:"column:check_in"`
	CheckOut    time.Time  `gorm:"column:check_out"`
	Guests      int        `gorm:"column:guests"`
	TotalPrice  float64    `gorm:"column:total_price"`
	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:          m.ID,
		PropertyID:  m.PropertyID,
		GuestID:     m.GuestID,
		CheckIn:     m.CheckIn,
		CheckOut:    m.CheckOut,
		Guests:      m.Guests,
		TotalPrice:  m.TotalPrice,
		Status:      domain.BookingStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		CancelledAt: m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:          b.ID,
		PropertyID:  b.PropertyID,
		GuestID:     b.GuestID,
		CheckIn:     b.CheckIn,
		CheckOut:    b.CheckOut,
		Guests:      b.Guests,
		TotalPrice:  b.TotalPrice,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		CancelledAt: b.CancelledAt,
	}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(tx BookingStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingRepository{db: tx})
	})
}

func (r *BookingRepository) LockProperty(ctx context.Context, propertyID int64) (*domain.Property, error) {
	q := r.db.WithContext(ctx)
	// SELECT ... FOR UPDATE serializes admissions per property on Postgres.
	// SQLite holds a single writer per transaction, so the clause is skipped.
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var m propertyModel
	if err := q.First(&m, propertyID).Error; err != nil {
		return nil, err
	}
	return toDomainProperty(m), nil
}

func (r *BookingRepository) GetProperty(ctx context.Context, propertyID int64) (*domain.Property, error) {
	var m propertyModel
	if err := r.db.WithContext(ctx).First(&m, propertyID).Error; err != nil {
		return nil, err
	}
	return toDomainProperty(m), nil
}

func (r *BookingRepository) IsAvailable(ctx context.Context, propertyID int64, checkIn, checkOut time.Time, excludeBookingID int64) (bool, error) {
	var cnt int64
	q := r.db.WithContext(ctx).Model(&bookingModel{}).
		Where("property_id = ?", propertyID).
		Where("status IN ?", []string{string(domain.BookingPending), string(domain.BookingConfirmed)}).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn)
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt == 0, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus, cancelledAt *time.Time, from ...domain.BookingStatus) error {
	updates := map[string]any{
		"status":     string(status),
		"updated_at": time.Now(),
	}
	if cancelledAt != nil {
		updates["cancelled_at"] = *cancelledAt
	}

	q := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", bookingID)
	if len(from) > 0 {
		prior := make([]string, 0, len(from))
		for _, s := range from {
			prior = append(prior, string(s))
		}
		q = q.Where("status IN ?", prior)
	}

	tx := q.Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guestID int64, limit, offset int) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{}).Where("guest_id = ?", guestID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []bookingModel
	if err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out, total, nil
}

func (r *BookingRepository) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, userID).Error; err != nil {
		return nil, err
	}
	return toDomainUser(m), nil
}

// BookingConfirmation is the denormalized snapshot the notification worker
// renders into the confirmation document.
type BookingConfirmation struct {
	BookingID     int64
	GuestName     string
	GuestEmail    string
	PropertyTitle string
	City          string
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	TotalPrice    float64
}

// GetConfirmation loads the booking together with its property and guest.
func (r *BookingRepository) GetConfirmation(ctx context.Context, bookingID int64) (*BookingConfirmation, error) {
	b, err := r.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	p, err := r.GetProperty(ctx, b.PropertyID)
	if err != nil {
		return nil, err
	}
	g, err := r.GetUser(ctx, b.GuestID)
	if err != nil {
		return nil, err
	}

	return &BookingConfirmation{
		BookingID:     b.ID,
		GuestName:     g.FirstName + " " + g.LastName,
		GuestEmail:    g.Email,
		PropertyTitle: p.Title,
		City:          p.City,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Guests:        b.Guests,
		TotalPrice:    b.TotalPrice,
	}, nil
}
