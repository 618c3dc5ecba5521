package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	T(key string, args ...any) string
	Register(ctx context.Context) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ToggleFavorite(ctx context.Context, args []string) error
	ListFavorites(ctx context.Context) error
	Progress(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	Language(ctx context.Context, args []string) error
	Avatar(ctx context.Context, args []string) error
	Sectors(ctx context.Context) error
	Jobs(ctx context.Context, args []string) error
	Job(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the KONGENGA CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. The loop exits on EOF, on a canceled ctx or
// when the user types "exit" or "quit".
//
//	Not logged in: register, login [manager], sectors, jobs, job <id>,
//	lang [code], help, exit
//
//	Logged in: whoami, profile, fav <id>, favs, progress [counter=value...],
//	avatar <file>, sectors, jobs, job <id>, lang [code], logout, help, exit
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("kongenga %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(a.T("repl.help.logged_in"))
			} else {
				printlnFn(a.T("repl.help.anonymous"))
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx, args)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami", "me":
			_ = a.WhoAmI(ctx)

		case "fav":
			_ = a.ToggleFavorite(ctx, args)

		case "favs", "favorites":
			_ = a.ListFavorites(ctx)

		case "progress":
			_ = a.Progress(ctx, args)

		case "profile":
			_ = a.Profile(ctx)

		case "lang":
			_ = a.Language(ctx, args)

		case "avatar":
			_ = a.Avatar(ctx, args)

		case "sectors":
			_ = a.Sectors(ctx)

		case "jobs":
			_ = a.Jobs(ctx, args)

		case "job":
			_ = a.Job(ctx, args)

		case "exit", "quit":
			printlnFn(a.T("repl.bye"))
			return

		default:
			printlnFn(a.T("error.unknown", cmd))
		}

		if err != nil {
			return
		}
	}
}
