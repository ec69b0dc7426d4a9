package repository

import (
	"context"

	"github.com/taskgo/backend/domain"
)

type UserRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}
