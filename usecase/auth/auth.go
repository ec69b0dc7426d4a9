package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskgo/backend/domain"
	"github.com/taskgo/backend/repository"
)

type UseCase struct {
	users  repository.UserRepository
	cache  repository.IdentityCache
	logger *zap.Logger
}

// New builds the token resolver. cache may be nil, in which case every
// request goes straight to the user store.
func New(users repository.UserRepository, cache repository.IdentityCache, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		cache:  cache,
		logger: logger,
	}
}

// ResolveToken maps an opaque token to the account that owns it. Cache
// failures degrade to a store lookup; an unknown token is reported as
// domain.ErrUnauthorized.
func (uc *UseCase) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	if uc.cache != nil {
		user, err := uc.cache.Get(ctx, token)
		if err == nil {
			return user, nil
		}
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			uc.logger.Debug("identity cache lookup failed", zap.Error(err))
		}
	}

	user, err := uc.users.GetByToken(ctx, token)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, token, user); err != nil {
			uc.logger.Debug("identity cache store failed", zap.Error(err))
		}
	}

	return user, nil
}
