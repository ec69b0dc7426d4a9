package main

import (
	"context"
	"log"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/taskgo/backend/api/handler"
	"github.com/taskgo/backend/internal/config"
	"github.com/taskgo/backend/internal/fixtures"
	"github.com/taskgo/backend/internal/infrastructure/monitor"
	pgInfra "github.com/taskgo/backend/internal/infrastructure/postgres"
	redisInfra "github.com/taskgo/backend/internal/infrastructure/redis"
	"github.com/taskgo/backend/internal/middleware"
	"github.com/taskgo/backend/internal/router"
	"github.com/taskgo/backend/internal/services/lifecycle"
	"github.com/taskgo/backend/pkg/httpcontext"
	"github.com/taskgo/backend/pkg/logger"
	"github.com/taskgo/backend/repository"
	"github.com/taskgo/backend/repository/postgres"
	redisRepo "github.com/taskgo/backend/repository/redis"
	authUC "github.com/taskgo/backend/usecase/auth"
	taskUC "github.com/taskgo/backend/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	if cfg.Fixtures.Enabled {
		loader := fixtures.NewLoader(userRepo, taskRepo, zapLogger)
		loadCtx, loadCancel := context.WithTimeout(appCtx, 30*time.Second)
		err := loader.Load(loadCtx)
		loadCancel()
		if err != nil {
			zapLogger.Fatal("fixture loading failed", zap.Error(err))
		}
	}

	var redisClient *goRedis.Client
	var identityCache repository.IdentityCache
	if cfg.Auth.CacheEnabled {
		redisClient, err = redisInfra.NewClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
		identityCache = redisRepo.NewIdentityCache(redisClient, cfg.Auth.CacheTTL)
	}

	mon := monitor.New(pool, redisClient, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	authUseCase := authUC.New(userRepo, identityCache, zapLogger)
	taskUseCase := taskUC.New(taskRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.TokenAuth(authUseCase, ctxAdapter, cfg.Auth.TokenHeader, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
