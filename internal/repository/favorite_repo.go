package repository

import (
	"context"
	"errors"
	"time"

	"staybook/internal/domain"

	"gorm.io/gorm"
)

var (
	ErrAlreadyFavorite  = errors.New("property already in favorites")
	ErrFavoriteNotFound = errors.New("favorite not found")
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

type favoriteModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	UserID     int64     `gorm:"column:user_id;uniqueIndex:idx_fav_user_property"`
	PropertyID int64     `gorm:"column:property_id;uniqueIndex:idx_fav_user_property"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (favoriteModel) TableName() string { return "favorites" }

func (r *FavoriteRepository) Add(ctx context.Context, userID, propertyID int64) (*domain.Favorite, error) {
	exists, err := r.Exists(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFavorite
	}

	m := favoriteModel{UserID: userID, PropertyID: propertyID, CreatedAt: time.Now()}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}

	return &domain.Favorite{
		ID:         m.ID,
		UserID:     m.UserID,
		PropertyID: m.PropertyID,
		CreatedAt:  m.CreatedAt,
	}, nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, propertyID int64) error {
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&favoriteModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, propertyID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&favoriteModel{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

// ListByUser returns the user's saved properties, newest first.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Favorite, int64, error) {
	q := r.db.WithContext(ctx).Model(&favoriteModel{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []favoriteModel
	if err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Favorite, 0, len(models))
	for _, m := range models {
		f := domain.Favorite{
			ID:         m.ID,
			UserID:     m.UserID,
			PropertyID: m.PropertyID,
			CreatedAt:  m.CreatedAt,
		}
		var pm propertyModel
		if err := r.db.WithContext(ctx).First(&pm, m.PropertyID).Error; err == nil {
			f.Property = toDomainProperty(pm)
		}
		out = append(out, f)
	}
	return out, total, nil
}
