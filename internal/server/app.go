// Package server initializes and runs the application server: it loads
// configuration, opens storage, applies migrations, and starts the HTTP
// API with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dbelyaev/coachbase/internal/common"
	"github.com/dbelyaev/coachbase/internal/logging"
	"github.com/dbelyaev/coachbase/internal/server/config"
	"github.com/dbelyaev/coachbase/internal/server/db"
	"github.com/dbelyaev/coachbase/internal/server/httpapi"
	"github.com/dbelyaev/coachbase/internal/server/services"
)

// memoryDSN selects the in-memory store instead of postgres. Development
// convenience only; nothing survives a restart.
const memoryDSN = "memory"

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager db.RepositoryManager
	users   *services.UserService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	if err := resolveSecret(ctx, cfg, logger); err != nil {
		return nil, err
	}

	var (
		manager db.RepositoryManager
		err     error
	)
	if cfg.DatabaseDSN == memoryDSN {
		logger.Warn(ctx, "running with in-memory storage, data will not survive a restart")
		manager = db.NewInMemoryRepositoryManager()
	} else {
		manager, err = db.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	us := services.NewUserService(manager.Users())

	return &App{config: cfg, logger: logger, manager: manager, users: us}, nil
}

// resolveSecret enforces the signing-secret policy: an empty secret is
// fatal outside development; in development an ephemeral secret is
// generated so tokens stop verifying across restarts.
func resolveSecret(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	if cfg.SecretKey != "" {
		return nil
	}
	if !cfg.IsDevelopment() {
		return errors.New("AUTH_SECRET must be set outside the development environment")
	}

	secret, err := common.MakeRandHexString(32)
	if err != nil {
		return fmt.Errorf("secret generation error: %w", err)
	}
	cfg.SecretKey = secret
	logger.Warn(ctx, "AUTH_SECRET not set, using an ephemeral development secret")
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(
		app.config.EndpointAddr,
		app.logger,
		app.users,
		app.config.SecretKey,
		app.config.TokenValidityDuration,
		app.config.IsDevelopment(),
	)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "error closing storage", "error", err)
	}
}
