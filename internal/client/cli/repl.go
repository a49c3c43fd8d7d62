package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/eldercare/internal/client/storage"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool

	Welcome(ctx context.Context) error
	Login(ctx context.Context) error
	Demo(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error

	Meds(ctx context.Context) error
	AddMed(ctx context.Context) error
	Take(ctx context.Context, id string) error
	DelMed(ctx context.Context, id string) error

	Calendar(ctx context.Context, month string) error
	Appts(ctx context.Context, date string) error
	AddAppt(ctx context.Context) error
	DelAppt(ctx context.Context, date, id string) error

	Profile(ctx context.Context) error
	Edit(ctx context.Context, field string) error
	Location(ctx context.Context) error
	SetLocation(ctx context.Context) error

	Hospitals(ctx context.Context) error
	Heart(ctx context.Context, n string) error
	SOS(ctx context.Context) error
	Monitor(ctx context.Context) error

	Backup(ctx context.Context) error
	Restore(ctx context.Context) error
	Reset(ctx context.Context) error
}

const (
	helpGuest = "Available commands: welcome, login, demo, hospitals, sos, exit"
	helpUser  = "Available commands: whoami, logout, meds, addmed, take <id>, delmed <id>, " +
		"calendar [YYYY-MM], appts [YYYY-MM-DD], addappt, delappt <date> <id>, " +
		"profile, edit <field>, location, setlocation, hospitals, heart [n], sos, monitor, " +
		"backup, restore, reset, exit"
)

// guestCommands work without a session.
var guestCommands = map[string]bool{
	"help": true, "welcome": true, "login": true, "demo": true,
	"hospitals": true, "sos": true, "exit": true, "quit": true,
}

// runREPL starts a read-eval-print loop for the ElderCare CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on a. Commands other than the guest ones require a
// session. Handler errors are printed and the loop continues. The loop exits
// on EOF, when ctx is done, or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("eldercare %s > ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if !guestCommands[cmd] && !a.isLoggedIn(ctx) {
			if isCommand(cmd) {
				printlnFn("Please log in first (login or demo).")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		if done := dispatch(ctx, a, cmd, args); done {
			return
		}
	}
}

var userCommands = map[string]bool{
	"logout": true, "whoami": true, "meds": true, "addmed": true, "take": true, "delmed": true,
	"calendar": true, "appts": true, "addappt": true, "delappt": true, "profile": true,
	"edit": true, "location": true, "setlocation": true, "heart": true, "monitor": true,
	"backup": true, "restore": true, "reset": true,
}

func isCommand(cmd string) bool {
	return userCommands[cmd]
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) (done bool) {
	var err error

	switch cmd {
	case "help":
		if a.isLoggedIn(ctx) {
			printlnFn(helpUser)
		} else {
			printlnFn(helpGuest)
		}

	case "welcome":
		err = a.Welcome(ctx)
	case "login":
		err = a.Login(ctx)
	case "demo":
		err = a.Demo(ctx)
	case "logout":
		err = a.Logout(ctx)
	case "whoami":
		err = a.WhoAmI(ctx)

	case "meds":
		err = a.Meds(ctx)
	case "addmed":
		err = a.AddMed(ctx)
	case "take":
		if len(args) != 1 {
			printlnFn("Usage: take <id>")
			return false
		}
		err = a.Take(ctx, args[0])
	case "delmed":
		if len(args) != 1 {
			printlnFn("Usage: delmed <id>")
			return false
		}
		err = a.DelMed(ctx, args[0])

	case "calendar":
		err = a.Calendar(ctx, arg(args, 0))
	case "appts":
		err = a.Appts(ctx, arg(args, 0))
	case "addappt":
		err = a.AddAppt(ctx)
	case "delappt":
		if len(args) != 2 {
			printlnFn("Usage: delappt <YYYY-MM-DD> <id>")
			return false
		}
		err = a.DelAppt(ctx, args[0], args[1])

	case "profile":
		err = a.Profile(ctx)
	case "edit":
		if len(args) != 1 {
			printlnFn("Usage: edit <field>")
			return false
		}
		err = a.Edit(ctx, args[0])
	case "location":
		err = a.Location(ctx)
	case "setlocation":
		err = a.SetLocation(ctx)

	case "hospitals":
		err = a.Hospitals(ctx)
	case "heart":
		err = a.Heart(ctx, arg(args, 0))
	case "sos":
		err = a.SOS(ctx)
	case "monitor":
		err = a.Monitor(ctx)

	case "backup":
		err = a.Backup(ctx)
	case "restore":
		err = a.Restore(ctx)
	case "reset":
		err = a.Reset(ctx)

	case "exit", "quit":
		printlnFn("Bye!")
		return true

	default:
		printlnFn("Unknown command:", cmd)
	}

	switch {
	case err == nil:
	case errors.Is(err, storage.ErrStorageUnavailable):
		printlnFn("Storage is unavailable:", err)
	default:
		printlnFn("Error:", err)
	}
	return false
}
