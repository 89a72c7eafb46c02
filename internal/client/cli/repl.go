package cli

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
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Scan(ctx context.Context, payload string) error
	Inbox(ctx context.Context) error
	Open(ctx context.Context, arg string) error
	Say(ctx context.Context, text string) error
	Send(ctx context.Context) error
	Back(ctx context.Context) error
	Profile(ctx context.Context) error
	Labs(ctx context.Context, slug string) error
	Theme(ctx context.Context, name string) error
	CheckUpdates(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the Delta Mobile client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help: show available commands
//	  - login: authenticate against the forum
//	  - exit | quit: leave the program
//
//	Logged in:
//	  - help: show available commands
//	  - scan <token>: redeem a scanned QR token
//	  - inbox: list conversations
//	  - open <n>: open the n-th conversation
//	  - say <text>: stage a draft in the open chat
//	  - send: clear the staged draft
//	  - back: return to the previous view
//	  - labs [slug]: browse labs content
//	  - profile: show profile and update status
//	  - theme <name>: switch the theme preference
//	  - update: re-run the update check
//	  - logout: log out
//	  - exit | quit: leave the program
//
// Any errors returned by command handlers are ignored here; handlers report
// their own failures. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("delta %s> ", statusFn()))
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
			if a.isLoggedIn() {
				printlnFn("Available commands: scan <token>, inbox, open <n>, say <text>, send, back, labs [slug], profile, theme <name>, update, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "scan":
			if len(args) == 0 {
				printlnFn("Usage: scan <token>")
				continue
			}
			_ = a.Scan(ctx, args[0])

		case "inbox":
			_ = a.Inbox(ctx)

		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <n>")
				continue
			}
			_ = a.Open(ctx, args[0])

		case "say":
			if len(args) == 0 {
				printlnFn("Usage: say <text>")
				continue
			}
			_ = a.Say(ctx, strings.Join(args, " "))

		case "send":
			_ = a.Send(ctx)

		case "back":
			_ = a.Back(ctx)

		case "labs":
			slug := ""
			if len(args) > 0 {
				slug = args[0]
			}
			_ = a.Labs(ctx, slug)

		case "profile":
			_ = a.Profile(ctx)

		case "theme":
			if len(args) == 0 {
				printlnFn("Usage: theme <name>")
				continue
			}
			_ = a.Theme(ctx, args[0])

		case "update":
			_ = a.CheckUpdates(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
