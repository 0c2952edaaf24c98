package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sourcegraph/conc"

	server "github.com/kazz187/labelguild/internal"
	"github.com/kazz187/labelguild/internal/config"
	"github.com/kazz187/labelguild/internal/event"
	"github.com/kazz187/labelguild/internal/eventbus"
	"github.com/kazz187/labelguild/internal/task"
	taskrepo "github.com/kazz187/labelguild/internal/task/repositoryimpl"
	"github.com/kazz187/labelguild/internal/tasksync"
	"github.com/kazz187/labelguild/internal/workspace"
	workspacerepo "github.com/kazz187/labelguild/internal/workspace/repositoryimpl"
	"github.com/kazz187/labelguild/pkg/clog"
	"github.com/kazz187/labelguild/pkg/storage"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("failed to load env", "error", err)
		os.Exit(1)
	}

	level := env.SlogLevel()
	var handler slog.Handler
	if env.IsLocal() {
		handler = clog.NewTextHandler(os.Stderr, clog.WithLevel(level))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(clog.NewAttributesHandler(handler)))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := run(ctx, env); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, env *config.Env) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var redisClient *redis.Client
	if env.RedisURL != "" {
		opts, err := redis.ParseURL(env.RedisURL)
		if err != nil {
			return fmt.Errorf("invalid redis url: %w", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	store, err := newStorage(ctx, env, redisClient)
	if err != nil {
		return err
	}

	bus := eventbus.New()
	tasksPath := taskrepo.Path(env.TasksKey)

	// Cross-context change signals: redis pub/sub when available, otherwise
	// whatever the storage backend can observe.
	var hubOpts []tasksync.Option
	if redisClient != nil {
		hubOpts = append(hubOpts, tasksync.WithChannel(tasksync.NewRedisChannel(redisClient, env.Channel)))
	}
	switch s := store.(type) {
	case *storage.LocalStorage:
		hubOpts = append(hubOpts, tasksync.WithChannel(tasksync.NewFileWatcher(s.FullPath(tasksPath), tasksync.DefaultDebounce)))
	case *storage.S3Storage:
		if redisClient == nil {
			hubOpts = append(hubOpts, tasksync.WithChannel(tasksync.NewPoller(s, tasksPath, env.PollInterval)))
		}
	}
	hub := tasksync.NewHub(bus, hubOpts...)

	taskRepo := taskrepo.NewYAMLRepository(store, env.TasksKey, hub)

	var workspaceOpts []workspace.Option
	if env.PersistDrafts {
		workspaceOpts = append(workspaceOpts, workspace.WithDraftRepository(workspacerepo.NewYAMLRepository(store)))
	}
	registry := workspace.NewRegistry(taskRepo, workspaceOpts...)

	srv := server.NewServer(
		env,
		task.NewServer(taskRepo, bus),
		workspace.NewServer(registry, bus),
		event.NewServer(bus),
	)

	slog.Info("task store ready",
		"storage", env.StorageEnv.Type,
		"path", taskRepo.StoragePath(),
		"origin", hub.Origin(),
		"persist_drafts", env.PersistDrafts,
		"session_idle_timeout", env.SessionIdleTimeout,
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		if err := hub.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Error("task sync stopped", "error", err)
		}
	})
	wg.Go(func() { registry.Run(ctx, hub) })
	wg.Go(func() { registry.RunExpiry(ctx, env.SessionIdleTimeout) })
	if env.EventLogDir != "" {
		journal, err := event.NewJournal(env.EventLogDir)
		if err != nil {
			return err
		}
		wg.Go(func() { journal.Run(ctx, bus) })
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}
	slog.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	wg.Wait()
	return nil
}

func newStorage(ctx context.Context, env *config.Env, redisClient *redis.Client) (storage.Storage, error) {
	switch env.StorageEnv.Type {
	case config.StorageS3:
		s, err := storage.NewS3Storage(ctx, storage.S3Options{
			Bucket:   env.S3Bucket,
			Prefix:   env.S3Prefix,
			Region:   env.S3Region,
			Endpoint: env.S3Endpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 storage: %w", err)
		}
		return s, nil
	case config.StorageRedis:
		return storage.NewRedisStorage(redisClient, "labelguild"), nil
	case config.StorageMemory:
		return storage.NewMemoryStorage(), nil
	default:
		s, err := storage.NewLocalStorage(env.StorageEnv.BaseDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create local storage: %w", err)
		}
		return s, nil
	}
}
