package repository

import (
	"context"

	"github.com/taskgo/backend/domain"
)

// IdentityCache is an optional fast path for token resolution. A miss is
// reported as domain.ErrUserNotFound; implementations are never authoritative.
type IdentityCache interface {
	Get(ctx context.Context, token string) (*domain.User, error)
	Set(ctx context.Context, token string, user *domain.User) error
	Delete(ctx context.Context, token string) error
}
