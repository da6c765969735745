package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with
// a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	List(ctx context.Context) error
	NewPage(ctx context.Context) error
	Select(ctx context.Context, arg string) error
	Edit(ctx context.Context) error
	AddRow(ctx context.Context) error
	Show(ctx context.Context) error
	Upload(ctx context.Context) error
	SetKey(ctx context.Context, arg string) error
	ImportKey(ctx context.Context, arg string) error
}

// runREPL starts a simple read-eval-print loop for the logbook CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are reported here and the loop
// continues; a failed upload must leave the user free to fix the problem and
// retry.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("dive %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := strings.TrimSpace(strings.TrimPrefix(line, cmd))

		var err error
		switch cmd {
		case "help":
			printlnFn("Available commands: (l)ist, new, select <uid>, edit, addrow, show, upload, setkey <key>, importkey <file>, exit")

		case "l", "list":
			err = a.List(ctx)

		case "new":
			err = a.NewPage(ctx)

		case "select":
			if arg == "" {
				printlnFn("Usage: select <uid>")
				continue
			}
			err = a.Select(ctx, arg)

		case "edit":
			err = a.Edit(ctx)

		case "addrow":
			err = a.AddRow(ctx)

		case "show":
			err = a.Show(ctx)

		case "upload":
			err = a.Upload(ctx)

		case "setkey":
			if arg == "" {
				printlnFn("Usage: setkey <backend|field1|field2...>")
				continue
			}
			err = a.SetKey(ctx, arg)

		case "importkey":
			if arg == "" {
				printlnFn("Usage: importkey <bundle file>")
				continue
			}
			err = a.ImportKey(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command: " + cmd)
		}

		if err != nil {
			printlnFn("Error: " + err.Error())
		}
	}
}
