package fixtures

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskgo/backend/domain"
	"github.com/taskgo/backend/repository"
)

// RoleAPI is granted to every seeded and provisioned account.
const RoleAPI = "ROLE_API"

// Loader seeds development accounts and tasks and provisions new accounts.
type Loader struct {
	users  repository.UserRepository
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func NewLoader(users repository.UserRepository, tasks repository.TaskRepository, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		users:  users,
		tasks:  tasks,
		logger: logger,
	}
}

type seedAccount struct {
	username string
	password string
	token    string
	tasks    []string
}

var seedAccounts = []seedAccount{
	{username: "root", password: "root", token: "root_key", tasks: []string{"root task", "second root task"}},
	{username: "other", password: "other", token: "other_key", tasks: []string{"other task"}},
}

// Load seeds the fixture accounts and their tasks. Accounts whose token is
// already present are skipped, so loading is idempotent.
func (l *Loader) Load(ctx context.Context) error {
	for _, seed := range seedAccounts {
		if _, err := l.users.GetByToken(ctx, seed.token); err == nil {
			continue
		} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := &domain.User{
			Username: seed.username,
			Password: string(hash),
			Roles:    []string{RoleAPI},
			APIToken: seed.token,
		}
		if err := l.users.Create(ctx, user); err != nil {
			return err
		}

		for _, title := range seed.tasks {
			if _, err := l.tasks.Create(ctx, &domain.Task{UserID: user.ID, Title: title}); err != nil {
				return err
			}
		}

		l.logger.Info("fixture account seeded",
			zap.String("username", seed.username),
			zap.Int("tasks", len(seed.tasks)))
	}
	return nil
}

// Provision creates an account with a bcrypt-hashed password and a freshly
// minted API token.
func (l *Loader) Provision(ctx context.Context, username, password string, roles []string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidData
	}
	if len(roles) == 0 {
		roles = []string{RoleAPI}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username: username,
		Password: string(hash),
		Roles:    roles,
		APIToken: uuid.NewString(),
	}
	if err := l.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyPassword checks a plaintext password against an account's stored hash.
func VerifyPassword(user *domain.User, password string) bool {
	if user == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}
