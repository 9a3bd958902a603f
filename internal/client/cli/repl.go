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
	isLoggedIn(ctx context.Context) bool
	takeLoginRedirect() bool
	report(err error)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ListAccounts(ctx context.Context) error
	CreateAccount(ctx context.Context) error
	ShowAccount(ctx context.Context, id, tab string) error
	ShowStatistics(ctx context.Context, id string) error
}

const (
	helpAnonymous = "Available commands: register, login, whoami, exit"
	helpSignedIn  = "Available commands: (l)ist accounts, create, account <id> [tab], stats <id>, whoami, logout, exit"
)

// runREPL reads commands line by line and dispatches them to a until EOF or
// "exit"/"quit". A login redirect raised by the gateway while the previous
// command ran is served before the next prompt.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if a.takeLoginRedirect() {
			printlnFn("Session expired, please log in")
			a.report(a.Login(ctx))
		}

		printlnFn(fmt.Sprintf("df (%s)> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		if quit := dispatch(ctx, a, parts); quit {
			return
		}
	}
}

// dispatch runs one command and reports whether the user asked to quit.
func dispatch(ctx context.Context, a execIface, parts []string) bool {
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "help":
		if a.isLoggedIn(ctx) {
			printlnFn(helpSignedIn)
		} else {
			printlnFn(helpAnonymous)
		}

	case "register":
		a.report(a.Register(ctx))

	case "login":
		a.report(a.Login(ctx))

	case "logout":
		a.report(a.Logout(ctx))

	case "whoami":
		a.report(a.WhoAmI(ctx))

	case "l", "list", "accounts":
		if requireLogin(ctx, a) {
			a.report(a.ListAccounts(ctx))
		}

	case "create":
		if requireLogin(ctx, a) {
			a.report(a.CreateAccount(ctx))
		}

	case "account":
		if len(args) == 0 {
			printlnFn("Usage: account <id> [dashboard|destinations|logs|members|settings]")
			break
		}
		if requireLogin(ctx, a) {
			tab := ""
			if len(args) > 1 {
				tab = args[1]
			}
			a.report(a.ShowAccount(ctx, args[0], tab))
		}

	case "stats":
		if len(args) == 0 {
			printlnFn("Usage: stats <id>")
			break
		}
		if requireLogin(ctx, a) {
			a.report(a.ShowStatistics(ctx, args[0]))
		}

	case "exit", "quit":
		printlnFn("Bye!")
		return true

	default:
		printlnFn("Unknown command:", cmd)
	}

	return false
}

func requireLogin(ctx context.Context, a execIface) bool {
	if a.isLoggedIn(ctx) {
		return true
	}
	printlnFn("Please log in first (login or register)")
	return false
}
