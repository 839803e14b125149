package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/memories/internal/logging"
	"github.com/dmitrijs2005/memories/internal/models"
	"github.com/dmitrijs2005/memories/internal/services"
)

var errLoginRequired = errors.New("please login first")

// usageError is returned when a command is called with the wrong arguments.
type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }

type App struct {
	auth    services.AuthService
	gallery services.GalleryService
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	busy    sync.Mutex
}

func NewApp(auth services.AuthService, gallery services.GalleryService, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		auth:    auth,
		gallery: gallery,
		logger:  logger,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run prints a greeting and serves commands until EOF or "exit".
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Memories (type 'help' for commands)")
	if u, ok := a.auth.CurrentUser(); ok {
		fmt.Fprintf(a.out, "Logged in as %s\n", u.Name)
	}
	runREPL(ctx, a, a.getStatus, a.reader, &a.busy)
}

// Drain waits for the command in progress, if any, to finish. Call it after
// cancelling the context given to Run; no new command starts after that.
// It gives up with ctx's error when ctx ends first.
func (a *App) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.busy.Lock()
		a.busy.Unlock()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

func (a *App) getStatus() string {
	if u, ok := a.auth.CurrentUser(); ok {
		return fmt.Sprintf("(%s)", u.Name)
	}
	return ""
}

func (a *App) currentUser() (models.SessionUser, error) {
	u, ok := a.auth.CurrentUser()
	if !ok {
		return models.SessionUser{}, errLoginRequired
	}
	return u, nil
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
