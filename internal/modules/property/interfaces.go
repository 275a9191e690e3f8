package property

import (
	"context"

	"staybook/internal/domain"
	"staybook/internal/repository"
)

type Repository interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f repository.PropertyFilter, limit, offset int) ([]domain.Property, int64, error)
}
