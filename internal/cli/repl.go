package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/memories/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	LoginEmail(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Upload(ctx context.Context, args []string) error
	Images(ctx context.Context) error
	EditImage(ctx context.Context, args []string) error
	DeleteImage(ctx context.Context, args []string) error

	Albums(ctx context.Context) error
	NewAlbum(ctx context.Context, args []string) error
	RenameAlbum(ctx context.Context, args []string) error
	DeleteAlbum(ctx context.Context, args []string) error
	AddToAlbum(ctx context.Context, args []string) error
	RemoveFromAlbum(ctx context.Context, args []string) error
	ShowAlbum(ctx context.Context, args []string) error
}

const (
	helpGuest = "Available commands: register, login, loginemail, exit"
	helpUser  = "Available commands: whoami, upload [path], images, editimage <id>, deleteimage <id>, " +
		"albums, newalbum [title], renamealbum <id> [title], deletealbum <id>, " +
		"addtoalbum <album> <image>..., removefromalbum <album> <image>, showalbum <id>, logout, exit"
)

// runREPL reads one command per line from reader and dispatches it to a.
//
// The first token is the command, the rest are its arguments. Gallery
// commands require a session. A command's error is reported to the user and
// the loop continues. The loop exits on EOF, when the user types "exit" or
// "quit", or once ctx is done.
//
// Each command runs with busy held, and no command starts after ctx is done,
// so a caller that cancels ctx and then takes busy knows no command is
// running.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, busy sync.Locker) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("memories %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		busy.Lock()
		if ctx.Err() != nil {
			busy.Unlock()
			return
		}
		stop := execute(ctx, a, parts[0], parts[1:])
		busy.Unlock()
		if stop {
			return
		}
	}
}

// execute runs one command and reports whether the loop should stop.
func execute(ctx context.Context, a execIface, cmd string, args []string) bool {
	var cmdErr error
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpUser)
		} else {
			printlnFn(helpGuest)
		}

	case "register":
		cmdErr = a.Register(ctx)
	case "login":
		cmdErr = a.Login(ctx)
	case "loginemail":
		cmdErr = a.LoginEmail(ctx)

	case "exit", "quit":
		printlnFn("Bye!")
		return true

	case "logout", "whoami", "upload", "images", "editimage", "deleteimage",
		"albums", "newalbum", "renamealbum", "deletealbum",
		"addtoalbum", "removefromalbum", "showalbum":
		if !a.isLoggedIn() {
			cmdErr = errLoginRequired
			break
		}
		cmdErr = dispatch(ctx, a, cmd, args)

	default:
		printlnFn("Unknown command:", cmd)
	}

	if cmdErr != nil {
		printlnFn("Error:", errorText(cmdErr))
	}
	return false
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "upload":
		return a.Upload(ctx, args)
	case "images":
		return a.Images(ctx)
	case "editimage":
		return a.EditImage(ctx, args)
	case "deleteimage":
		return a.DeleteImage(ctx, args)
	case "albums":
		return a.Albums(ctx)
	case "newalbum":
		return a.NewAlbum(ctx, args)
	case "renamealbum":
		return a.RenameAlbum(ctx, args)
	case "deletealbum":
		return a.DeleteAlbum(ctx, args)
	case "addtoalbum":
		return a.AddToAlbum(ctx, args)
	case "removefromalbum":
		return a.RemoveFromAlbum(ctx, args)
	case "showalbum":
		return a.ShowAlbum(ctx, args)
	}
	return nil
}

// errorText keeps CLI-level errors verbatim and maps service errors to
// user messages.
func errorText(err error) string {
	var u usageError
	switch {
	case errors.As(err, &u):
		return u.Error()
	case errors.Is(err, errLoginRequired):
		return err.Error()
	case errors.Is(err, io.EOF):
		return "input closed"
	default:
		return common.UserMessage(err)
	}
}
