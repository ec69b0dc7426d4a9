package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskgo/backend/domain"
	"github.com/taskgo/backend/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// List returns every task owned by userID.
func (uc *UseCase) List(ctx context.Context, userID int64) ([]domain.Task, error) {
	return uc.tasks.ListByOwner(ctx, userID)
}

// Find looks a task up scoped by (id, owner) and keeps list semantics: a
// miss, whether the task is absent or owned by someone else, is an empty
// result rather than an error.
func (uc *UseCase) Find(ctx context.Context, userID, id int64) ([]domain.Task, error) {
	task, err := uc.tasks.GetByOwner(ctx, id, userID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return []domain.Task{}, nil
		}
		return nil, err
	}
	return []domain.Task{*task}, nil
}

// Create persists a new task owned by userID. New tasks always start
// uncompleted.
func (uc *UseCase) Create(ctx context.Context, userID int64, title string) (*domain.Task, error) {
	task := &domain.Task{
		UserID: userID,
		Title:  title,
	}
	return uc.tasks.Create(ctx, task)
}

// Edit updates title and completed on a task owned by userID. A task that
// does not exist and a task owned by someone else both surface as
// domain.ErrTaskNotFound.
func (uc *UseCase) Edit(ctx context.Context, userID, id int64, title string, completed bool) (*domain.Task, error) {
	task, err := uc.tasks.GetByOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Completed = completed

	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task. The lookup is unscoped: a missing task is
// domain.ErrTaskNotFound, while a task owned by another account is
// domain.ErrTaskForbidden and is left intact.
func (uc *UseCase) Delete(ctx context.Context, userID, id int64) error {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !task.OwnedBy(userID) {
		return domain.ErrTaskForbidden
	}
	return uc.tasks.Delete(ctx, task.ID)
}
