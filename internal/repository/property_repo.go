package repository

import (
	"context"
	"time"

	"staybook/internal/domain"

	"gorm.io/gorm"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

type propertyModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	HostID      int64     `gorm:"column:host_id;index"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description;type:text"`
	Address     string    `gorm:"column:address"`
	City        string    `gorm:"column:city;index"`
	Beds        int       `gorm:"column:beds"`
	Price       float64   `gorm:"column:price"`
	Status      string    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (propertyModel) TableName() string { return "properties" }

func toDomainProperty(m propertyModel) *domain.Property {
	return &domain.Property{
		ID:          m.ID,
		HostID:      m.HostID,
		Title:       m.Title,
		Description: m.Description,
		Address:     m.Address,
		City:        m.City,
		Beds:        m.Beds,
		Price:       m.Price,
		Status:      domain.PropertyStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toPropertyModel(p *domain.Property) propertyModel {
	return propertyModel{
		ID:          p.ID,
		HostID:      p.HostID,
		Title:       p.Title,
		Description: p.Description,
		Address:     p.Address,
		City:        p.City,
		Beds:        p.Beds,
		Price:       p.Price,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// PropertyFilter narrows List results. Nil/zero fields are ignored.
type PropertyFilter struct {
	HostID   int64
	City     string
	MinPrice *float64
	MaxPrice *float64
	Beds     int
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	m := toPropertyModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProperty(m)
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	var m propertyModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProperty(m), nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	m := toPropertyModel(p)
	m.UpdatedAt = time.Now()
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProperty(m)
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&propertyModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PropertyRepository) List(ctx context.Context, f PropertyFilter, limit, offset int) ([]domain.Property, int64, error) {
	q := r.db.WithContext(ctx).Model(&propertyModel{})

	if f.HostID != 0 {
		q = q.Where("host_id = ?", f.HostID)
	}
	if f.City != "" {
		q = q.Where("LOWER(city) = LOWER(?)", f.City)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Beds != 0 {
		q = q.Where("beds = ?", f.Beds)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []propertyModel
	if err := q.Order("id").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Property, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainProperty(m))
	}
	return out, total, nil
}
