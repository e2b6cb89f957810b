package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. Tests replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, query string) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	EditUser(ctx context.Context, arg string) error
	DeleteUser(ctx context.Context, arg string) error
	Open(ctx context.Context, path string) error
}

// runREPL is the interactive command loop.
//
// It reads a line from the scanner, parses the first token as the command,
// and dispatches to methods on 'a'. Unknown commands are reported back. The
// loop exits on scanner EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help             - show available commands
//	  - login            - authenticate
//	  - exit | quit      - leave the program
//
//	Logged in:
//	  - list | l         - show the current page (filtered)
//	  - search [text]    - set the search query; no text clears it
//	  - next | prev      - change page
//	  - edit <id>        - edit a record from the current page
//	  - rm <id>          - delete a record (with confirmation)
//	  - open <path>      - navigate to a path, e.g. /users/7/edit
//	  - logout           - sign out
//	  - exit | quit      - leave the program
//
// Errors returned by command handlers are ignored here; handlers surface
// their own notifications. This keeps the loop focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("userdeck %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, search, next, prev, edit <id>, rm <id>, open <path>, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "next":
			_ = a.NextPage(ctx)

		case "prev":
			_ = a.PrevPage(ctx)

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.EditUser(ctx, args[0])

		case "rm", "delete":
			if len(args) == 0 {
				printlnFn("Usage: rm <id>")
				continue
			}
			_ = a.DeleteUser(ctx, args[0])

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <path>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
