package ports

import (
	"context"

	"github.com/miniorder/order-system/internal/core/domain"
)

// TokenPair is an access/refresh token couple issued at login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, *domain.User, error)
	// Refresh exchanges a valid refresh token for a fresh pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}
