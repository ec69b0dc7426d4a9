package repository

import (
	"context"

	"github.com/taskgo/backend/domain"
)

type TaskRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	GetByOwner(ctx context.Context, id, userID int64) (*domain.Task, error)
	ListByOwner(ctx context.Context, userID int64) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
}
