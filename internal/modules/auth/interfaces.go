package auth

import (
	"context"

	"staybook/internal/domain"
	jwtsvc "staybook/internal/pkg/jwt"
)

// UserRepository is the persistence surface the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type tokenService interface {
	GeneratePair(userID int64, role string) (access string, refresh string, err error)
	ValidateRefresh(tokenStr string) (*jwtsvc.Claims, error)
}
