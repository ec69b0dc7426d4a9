package task

import (
	"context"
	"testing"
	"time"

	"github.com/taskgo/backend/domain"
)

type fakeTaskRepo struct {
	tasks  map[int64]domain.Task
	nextID int64
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]domain.Task), nextID: 1}
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *fakeTaskRepo) GetByOwner(_ context.Context, id, userID int64) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok || task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *fakeTaskRepo) ListByOwner(_ context.Context, userID int64) ([]domain.Task, error) {
	var out []domain.Task
	for id := int64(1); id < r.nextID; id++ {
		if task, ok := r.tasks[id]; ok && task.UserID == userID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	task.ID = r.nextID
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	r.nextID++
	r.tasks[task.ID] = *task
	return task, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	task.UpdatedAt = time.Now()
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func seedRepo(t *testing.T, repo *fakeTaskRepo) (mine, foreign *domain.Task) {
	t.Helper()
	mine, err := repo.Create(context.Background(), &domain.Task{UserID: 1, Title: "root task"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	foreign, err = repo.Create(context.Background(), &domain.Task{UserID: 2, Title: "other task"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return mine, foreign
}

func TestCreateStartsUncompletedAndOwnedByCaller(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)

	created, err := uc.Create(context.Background(), 1, "buy milk")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("owner = %d, want 1", created.UserID)
	}
	if created.Completed {
		t.Error("new task must start uncompleted")
	}
	if created.ID == 0 {
		t.Error("expected assigned id")
	}
}

func TestListReturnsOnlyCallersTasks(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)
	mine, _ := seedRepo(t, repo)

	tasks, err := uc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != mine.ID {
		t.Fatalf("expected only task %d, got %+v", mine.ID, tasks)
	}
}

func TestFindMissesKeepListSemantics(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)
	mine, foreign := seedRepo(t, repo)

	found, err := uc.Find(context.Background(), 1, mine.ID)
	if err != nil {
		t.Fatalf("find own: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected one result, got %d", len(found))
	}

	// Foreign-owned and nonexistent ids yield an empty result, not an error.
	for _, id := range []int64{foreign.ID, 999} {
		found, err := uc.Find(context.Background(), 1, id)
		if err != nil {
			t.Fatalf("find %d: %v", id, err)
		}
		if found == nil || len(found) != 0 {
			t.Fatalf("expected empty non-nil result for id %d, got %+v", id, found)
		}
	}
}

func TestEditUpdatesBothFields(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)
	mine, _ := seedRepo(t, repo)

	edited, err := uc.Edit(context.Background(), 1, mine.ID, "edited title", true)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Title != "edited title" || !edited.Completed {
		t.Fatalf("edit did not apply: %+v", edited)
	}

	stored, _ := repo.GetByID(context.Background(), mine.ID)
	if stored.Title != "edited title" || !stored.Completed {
		t.Fatalf("edit not persisted: %+v", stored)
	}
}

func TestEditForeignOrMissingIsNotFound(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)
	_, foreign := seedRepo(t, repo)

	for _, id := range []int64{foreign.ID, 999} {
		if _, err := uc.Edit(context.Background(), 1, id, "x", true); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			t.Errorf("edit %d: got %v, want not found", id, err)
		}
	}
}

func TestDeleteOwnTask(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)
	mine, _ := seedRepo(t, repo)

	if err := uc.Delete(context.Background(), 1, mine.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), mine.ID); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatal("task should be gone")
	}
}

func TestDeleteForeignTaskIsForbiddenAndKeepsRow(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)
	_, foreign := seedRepo(t, repo)

	err := uc.Delete(context.Background(), 1, foreign.ID)
	if !domain.IsDomainError(err, domain.ErrCodeForbidden) {
		t.Fatalf("got %v, want forbidden", err)
	}
	if _, err := repo.GetByID(context.Background(), foreign.ID); err != nil {
		t.Fatal("foreign task must remain intact")
	}
}

func TestDeleteMissingTaskIsNotFound(t *testing.T) {
	repo := newFakeTaskRepo()
	uc := New(repo, nil)

	if err := uc.Delete(context.Background(), 1, 42); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("got %v, want not found", err)
	}
}
