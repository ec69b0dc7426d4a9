package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/taskgo/backend/domain"
)

type memUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func (r *memUserRepo) GetByToken(_ context.Context, token string) (*domain.User, error) {
	user, ok := r.users[token]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.APIToken] = user
	return nil
}

type memTaskRepo struct {
	tasks  map[int64]domain.Task
	nextID int64
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{tasks: make(map[int64]domain.Task), nextID: 1}
}

func (r *memTaskRepo) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *memTaskRepo) GetByOwner(_ context.Context, id, userID int64) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok || task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	return &task, nil
}

func (r *memTaskRepo) ListByOwner(_ context.Context, userID int64) ([]domain.Task, error) {
	var out []domain.Task
	for id := int64(1); id < r.nextID; id++ {
		if task, ok := r.tasks[id]; ok && task.UserID == userID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *memTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	task.ID = r.nextID
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	r.nextID++
	r.tasks[task.ID] = *task
	return task, nil
}

func (r *memTaskRepo) Update(_ context.Context, task *domain.Task) error {
	r.tasks[task.ID] = *task
	return nil
}

func (r *memTaskRepo) Delete(_ context.Context, id int64) error {
	delete(r.tasks, id)
	return nil
}

func TestLoadSeedsAccountsAndTasks(t *testing.T) {
	users := newMemUserRepo()
	tasks := newMemTaskRepo()
	loader := NewLoader(users, tasks, nil)

	if err := loader.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	root, err := users.GetByToken(context.Background(), "root_key")
	if err != nil {
		t.Fatalf("root account missing: %v", err)
	}
	other, err := users.GetByToken(context.Background(), "other_key")
	if err != nil {
		t.Fatalf("other account missing: %v", err)
	}

	if !root.HasRole(RoleAPI) || !other.HasRole(RoleAPI) {
		t.Error("seeded accounts must carry the API role")
	}
	if !VerifyPassword(root, "root") {
		t.Error("root password hash does not verify")
	}
	if VerifyPassword(root, "wrong") {
		t.Error("wrong password must not verify")
	}

	rootTasks, _ := tasks.ListByOwner(context.Background(), root.ID)
	if len(rootTasks) != 2 {
		t.Fatalf("root should own 2 seeded tasks, got %d", len(rootTasks))
	}
	otherTasks, _ := tasks.ListByOwner(context.Background(), other.ID)
	if len(otherTasks) != 1 || otherTasks[0].Title != "other task" {
		t.Fatalf("other should own the single seeded task, got %+v", otherTasks)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	users := newMemUserRepo()
	tasks := newMemTaskRepo()
	loader := NewLoader(users, tasks, nil)

	if err := loader.Load(context.Background()); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if err := loader.Load(context.Background()); err != nil {
		t.Fatalf("second load: %v", err)
	}

	if len(users.users) != 2 {
		t.Fatalf("expected 2 accounts after reload, got %d", len(users.users))
	}
	if len(tasks.tasks) != 3 {
		t.Fatalf("expected 3 tasks after reload, got %d", len(tasks.tasks))
	}
}

func TestProvisionMintsTokenAndHashesPassword(t *testing.T) {
	users := newMemUserRepo()
	loader := NewLoader(users, newMemTaskRepo(), nil)

	user, err := loader.Provision(context.Background(), "alice", "s3cret", nil)
	if err != nil {
		t.Fatalf("provision: %v", err)
	}

	if user.APIToken == "" {
		t.Fatal("expected a minted token")
	}
	if user.Password == "s3cret" {
		t.Fatal("password must be stored hashed")
	}
	if !VerifyPassword(user, "s3cret") {
		t.Fatal("provisioned password does not verify")
	}
	if !user.HasRole(RoleAPI) {
		t.Fatal("default role missing")
	}
}

func TestProvisionRejectsBlankCredentials(t *testing.T) {
	loader := NewLoader(newMemUserRepo(), newMemTaskRepo(), nil)

	if _, err := loader.Provision(context.Background(), "", "pw", nil); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("blank username: got %v", err)
	}
	if _, err := loader.Provision(context.Background(), "bob", "", nil); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("blank password: got %v", err)
	}
}
