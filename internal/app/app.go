// Package app wires configuration, logging, storage and the services into
// the interactive client and runs it until the user exits or a signal
// arrives.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/memories/internal/cli"
	"github.com/dmitrijs2005/memories/internal/config"
	"github.com/dmitrijs2005/memories/internal/cryptox"
	"github.com/dmitrijs2005/memories/internal/filex"
	"github.com/dmitrijs2005/memories/internal/logging"
	"github.com/dmitrijs2005/memories/internal/repositories/blobs"
	"github.com/dmitrijs2005/memories/internal/repositories/records"
	"github.com/dmitrijs2005/memories/internal/services"
	"github.com/dmitrijs2005/memories/internal/session"
)

// openRepo is a test seam for blobs.Open.
var openRepo = blobs.Open

// drainTimeout bounds how long shutdown waits for a running command.
var drainTimeout = 5 * time.Second

type App struct {
	config   *config.Config
	logger   logging.Logger
	closeLog func() error
	repo     blobs.Repository
	cli      *cli.App
}

// NewApp builds the object graph described by c. Log output goes to logOut,
// the CLI reads in and writes out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	logger, closeLog, err := logging.New(logging.Options{
		Level:  c.LogLevel,
		Format: c.LogFormat,
		File:   c.LogFile,
	}, logOut)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	hasher, err := cryptox.New(c.HashScheme)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	if c.Backend == config.BackendSQLite {
		if err := filex.EnsureParentDir(c.SQLitePath); err != nil {
			_ = closeLog()
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}
	repo, err := openRepo(ctx, c, logger)
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	var opts []session.Option
	if c.SessionSecret != "" {
		opts = append(opts, session.WithSigningKey([]byte(c.SessionSecret), c.SessionTTL))
	}
	holder := session.NewHolder(ctx, repo, logger, opts...)

	store := records.NewStore(repo, logger)
	auth := services.NewAuthService(store.Users, holder, hasher, logger)
	gallery := services.NewGalleryService(store, logger)

	logger.Debug(ctx, "app configured", "config", c.String())

	return &App{
		config:   c,
		logger:   logger,
		closeLog: closeLog,
		repo:     repo,
		cli:      cli.NewApp(auth, gallery, logger, in, out),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the CLI until it exits or ctx is cancelled by a signal, then
// releases storage and log resources.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "backend", app.config.Backend)
	app.initSignalHandler(cancelFunc)

	done := make(chan struct{})
	go func() {
		defer close(done)
		app.cli.Run(ctx)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		app.logger.Info(ctx, "interrupted, shutting down")
		drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		if err := app.cli.Drain(drainCtx); err != nil {
			app.logger.Warn(drainCtx, "command still running, closing storage", "err", err)
		}
		cancel()
	}
	return app.Close()
}

func (app *App) Close() error {
	err := app.repo.Close()
	if err != nil {
		app.logger.Error(context.Background(), "close storage", "err", err)
	}
	return errors.Join(err, app.closeLog())
}
