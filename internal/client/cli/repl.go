package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Google(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	NewPassword(ctx context.Context) error
	Whoami(ctx context.Context) error
	Onboarding(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them to a.
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — sign in with email and password
//	  - google         — sign in with Google
//	  - reset          — email a password reset link
//	  - newpassword    — set a new password with a reset token
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - whoami         — show the current profile
//	  - onboarding     — replay the onboarding walkthrough
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Handler errors are reported by the handlers themselves. The loop exits on
// EOF, on "exit"/"quit", or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("onboarding %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, onboarding, logout, exit")
			} else {
				printlnFn("Available commands: register, login, google, reset, newpassword, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "google":
			_ = a.Google(ctx)

		case "reset":
			_ = a.ResetPassword(ctx)

		case "newpassword":
			_ = a.NewPassword(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "onboarding":
			_ = a.Onboarding(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
