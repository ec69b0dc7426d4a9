package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/taskgo/backend/internal/config"
	"github.com/taskgo/backend/internal/fixtures"
	pgInfra "github.com/taskgo/backend/internal/infrastructure/postgres"
	"github.com/taskgo/backend/pkg/logger"
	"github.com/taskgo/backend/repository/postgres"
)

// provision creates an API account out of band and prints its token. The HTTP
// surface has no account management on purpose.
func main() {
	username := flag.String("username", "", "account username (required)")
	password := flag.String("password", "", "account password (required)")
	roles := flag.String("roles", fixtures.RoleAPI, "comma-separated role labels")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("both -username and -password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	pool, err := pgInfra.NewPool(ctx, cfg.Database, zapLogger)
	if err != nil {
		log.Fatalf("postgres connection failed: %v", err)
	}
	defer pool.Close()

	loader := fixtures.NewLoader(postgres.NewUserRepository(pool), postgres.NewTaskRepository(pool), zapLogger)

	user, err := loader.Provision(ctx, *username, *password, splitRoles(*roles))
	if err != nil {
		log.Fatalf("provisioning failed: %v", err)
	}

	fmt.Printf("account %q created (id %d)\ntoken: %s\n", user.Username, user.ID, user.APIToken)
}

func splitRoles(raw string) []string {
	var roles []string
	for _, role := range strings.Split(raw, ",") {
		if role = strings.TrimSpace(role); role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}
