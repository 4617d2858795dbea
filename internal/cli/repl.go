package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isUnlocked() bool
	Unlock(ctx context.Context) error
	Lock(ctx context.Context) error
	AddEntry(ctx context.Context) error
	ListEntries(ctx context.Context) error
	ShowEntry(ctx context.Context, args []string) error
	DeleteEntry(ctx context.Context, args []string) error
	Pin(ctx context.Context, args []string) error
	Settings(ctx context.Context, args []string) error
	Status(ctx context.Context) error
	History(ctx context.Context) error
	ResetFace(ctx context.Context) error
	ResetAll(ctx context.Context) error
}

// Root starts the interactive loop on stdin.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to FaceVault (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// runREPL starts a simple read-eval-print loop for the FaceVault CLI.
//
// It reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
//
// Commands that inspect or mutate the credential vault require an
// unlocked session; the loop rejects them upfront so handlers can assume
// a valid vault key.
//
// Any errors returned by command handlers are ignored here; handlers
// print their own errors. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("fv %s> ", statusFn()))
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
			if a.isUnlocked() {
				printlnFn("Available commands: add, (l)ist, show <name>, delete <name>, pin, settings, status, history, resetface, resetall, lock, exit")
			} else {
				printlnFn("Available commands: unlock, status, history, exit")
			}

		case "unlock":
			_ = a.Unlock(ctx)

		case "lock":
			_ = a.Lock(ctx)

		case "status":
			_ = a.Status(ctx)

		case "history":
			_ = a.History(ctx)

		case "add":
			if !a.isUnlocked() {
				printlnFn("Unlock first")
				continue
			}
			_ = a.AddEntry(ctx)

		case "l", "list":
			if !a.isUnlocked() {
				printlnFn("Unlock first")
				continue
			}
			_ = a.ListEntries(ctx)

		case "show", "get":
			if !a.isUnlocked() {
				printlnFn("Unlock first")
				continue
			}
			_ = a.ShowEntry(ctx, args)

		case "delete", "del":
			if !a.isUnlocked() {
				printlnFn("Unlock first")
				continue
			}
			_ = a.DeleteEntry(ctx, args)

		case "pin":
			if !a.isUnlocked() {
				printlnFn("Unlock first")
				continue
			}
			_ = a.Pin(ctx, args)

		case "settings":
			if !a.isUnlocked() {
				printlnFn("Unlock first")
				continue
			}
			_ = a.Settings(ctx, args)

		case "resetface":
			if !a.isUnlocked() {
				printlnFn("Unlock first")
				continue
			}
			_ = a.ResetFace(ctx)

		case "resetall":
			if !a.isUnlocked() {
				printlnFn("Unlock first")
				continue
			}
			_ = a.ResetAll(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
