package browse

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context)
	Search(ctx context.Context, term string)
	Open(ctx context.Context, raw string)
	Select(ctx context.Context, raw string)
	Back(ctx context.Context)
	Refresh(ctx context.Context)
	Retry(ctx context.Context)
}

// runBrowse starts a simple read–eval–print loop for the directory browser.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	help             — show available commands
//	list | l         — show the user grid (fetched on first display)
//	search <term>    — show the grid filtered by term
//	open <id>        — show one user, fetching it when not already listed
//	select <id>      — select a user from the shown grid without a fetch
//	back             — clear the selection and return to the grid
//	refresh          — re-fetch the user list
//	retry            — acknowledge the error and re-run the last fetch
//	exit | quit      — leave the program
//
// Command handlers render their own output and absorb their own failures;
// this keeps the REPL loop resilient and focused on I/O.
func runBrowse(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("udir %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: (l)ist, search <term>, open <id>, select <id>, back, refresh, retry, exit")

		case "l", "list":
			a.List(ctx)

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <term>")
				continue
			}
			a.Search(ctx, strings.Join(args, " "))

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <id>")
				continue
			}
			a.Open(ctx, args[0])

		case "select":
			if len(args) == 0 {
				printlnFn("Usage: select <id>")
				continue
			}
			a.Select(ctx, args[0])

		case "back":
			a.Back(ctx)

		case "refresh":
			a.Refresh(ctx)

		case "retry":
			a.Retry(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
