package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Get(ctx context.Context, idArg string) error
	List(ctx context.Context) error
	New(ctx context.Context) error
	Update(ctx context.Context) error
	Suggest(ctx context.Context, field, query string) error
	Status(ctx context.Context) error
	Metrics(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// It returns on end of input or on "exit"/"quit".
//
//	Not logged in:  help, login, suggest, status, metrics, exit
//	Logged in:      help, get <id>, list, new, update, suggest, status, metrics, logout, exit
//
// Handler errors are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("at %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: get <id>, (l)ist, new, update, suggest <field> [query], status, metrics, logout, exit")
			} else {
				printlnFn("Available commands: login, suggest <field> [query], status, metrics, exit")
			}

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "get":
			if len(args) != 1 {
				printlnFn("Usage: get <id>")
				continue
			}
			cmdErr = a.Get(ctx, args[0])

		case "l", "list":
			cmdErr = a.List(ctx)

		case "new":
			cmdErr = a.New(ctx)

		case "update":
			cmdErr = a.Update(ctx)

		case "suggest":
			if len(args) == 0 {
				printlnFn("Usage: suggest <category|brand|model|supplier> [query]")
				continue
			}
			cmdErr = a.Suggest(ctx, args[0], strings.Join(args[1:], " "))

		case "status":
			cmdErr = a.Status(ctx)

		case "metrics":
			cmdErr = a.Metrics(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
