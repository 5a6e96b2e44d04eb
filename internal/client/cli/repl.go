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
	List(ctx context.Context, args []string) error
	ListEmployees(ctx context.Context) error
	Add(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	AddEmployee(ctx context.Context) error
	DeleteEmployee(ctx context.Context, rut string) error
	Undo(ctx context.Context) error
	Sync(ctx context.Context) error
	Refresh(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the decretos CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are printed, not fatal: a failed
// push or a rejected record leaves the loop running.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("dcli %s> ", statusFn()))
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

		var err error
		switch cmd {
		case "help":
			printlnFn("Available commands: (l)ist [pa|fl], emp, add, del <id>, addemp, delemp <rut>, undo, sync, refresh, status, exit")

		case "l", "list":
			err = a.List(ctx, args)

		case "emp":
			err = a.ListEmployees(ctx)

		case "add":
			err = a.Add(ctx)

		case "del":
			if len(args) == 0 {
				printlnFn("Usage: del <id>")
				continue
			}
			err = a.Delete(ctx, args[0])

		case "addemp":
			err = a.AddEmployee(ctx)

		case "delemp":
			if len(args) == 0 {
				printlnFn("Usage: delemp <rut>")
				continue
			}
			err = a.DeleteEmployee(ctx, args[0])

		case "undo":
			err = a.Undo(ctx)

		case "sync":
			err = a.Sync(ctx)

		case "refresh":
			err = a.Refresh(ctx)

		case "status":
			err = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
