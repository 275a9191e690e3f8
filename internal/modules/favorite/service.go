package favorite

import (
	"context"
	"errors"

	"staybook/internal/domain"
	"staybook/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrAlreadySaved     = errors.New("property already saved")
	ErrNotSaved         = errors.New("property not in favorites")
)

type Repository interface {
	Add(ctx context.Context, userID, propertyID int64) (*domain.Favorite, error)
	Remove(ctx context.Context, userID, propertyID int64) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Favorite, int64, error)
}

type PropertyGetter interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
}

type Service struct {
	repo  Repository
	props PropertyGetter
}

func NewService(repo Repository, props PropertyGetter) *Service {
	return &Service{repo: repo, props: props}
}

func (s *Service) Add(ctx context.Context, userID, propertyID int64) (*domain.Favorite, error) {
	if _, err := s.props.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	f, err := s.repo.Add(ctx, userID, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyFavorite) {
			return nil, ErrAlreadySaved
		}
		return nil, err
	}
	return f, nil
}

func (s *Service) Remove(ctx context.Context, userID, propertyID int64) error {
	if err := s.repo.Remove(ctx, userID, propertyID); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			return ErrNotSaved
		}
		return err
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID int64, limit, offset int) ([]domain.Favorite, int64, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}
