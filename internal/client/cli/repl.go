package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/contactdir/internal/client/view"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	controls() view.Controls
	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Show(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Picture(ctx context.Context, id string) error
	Export(ctx context.Context, format string) error
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
}

// helpText lists the commands visible for the given controls.
func helpText(c view.Controls) string {
	cmds := []string{"help", "(l)ist", "search <term>", "show <id>"}
	if c.Create {
		cmds = append(cmds, "add", "edit <id>", "delete <id>")
	}
	cmds = append(cmds, "picture <id>")
	if c.Export {
		cmds = append(cmds, "export [csv|xlsx|s3]")
	}
	if c.Login {
		cmds = append(cmds, "login")
	}
	if c.Signup {
		cmds = append(cmds, "signup")
	}
	if c.Logout {
		cmds = append(cmds, "logout")
	}
	cmds = append(cmds, "whoami", "refresh", "exit")
	return "Available commands: " + strings.Join(cmds, ", ")
}

// runREPL starts a simple read–eval–print loop for the contact directory CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Commands that depend on the session (add, export, logout vs. login,
// signup) are offered and accepted only when the matching control is
// visible. edit and delete additionally require the card action to have
// been rendered; that check happens in the App.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("cd (%s)> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		ctrl := a.controls()

		arg := func(usage string) (string, bool) {
			if len(args) != 1 {
				printlnFn("Usage:", usage)
				return "", false
			}
			return args[0], true
		}
		gated := func(visible bool) bool {
			if !visible {
				printlnFn("Command not available:", cmd)
			}
			return visible
		}

		switch cmd {
		case "help":
			printlnFn(helpText(ctrl))

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "show":
			if id, ok := arg("show <id>"); ok {
				_ = a.Show(ctx, id)
			}

		case "add":
			if gated(ctrl.Create) {
				_ = a.Add(ctx)
			}

		case "edit":
			if id, ok := arg("edit <id>"); ok {
				_ = a.Edit(ctx, id)
			}

		case "delete":
			if id, ok := arg("delete <id>"); ok {
				_ = a.Delete(ctx, id)
			}

		case "picture":
			if id, ok := arg("picture <id>"); ok {
				_ = a.Picture(ctx, id)
			}

		case "export":
			if gated(ctrl.Export) {
				format := ""
				if len(args) > 0 {
					format = args[0]
				}
				_ = a.Export(ctx, format)
			}

		case "login":
			if gated(ctrl.Login) {
				_ = a.Login(ctx)
			}

		case "signup":
			if gated(ctrl.Signup) {
				_ = a.Signup(ctx)
			}

		case "logout":
			if gated(ctrl.Logout) {
				_ = a.Logout(ctx)
			}

		case "whoami":
			_ = a.Whoami(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
