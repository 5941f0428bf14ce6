package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Profile(ctx context.Context, args []string) error
	Scholarships(ctx context.Context, args []string) error
	Courses(ctx context.Context, args []string) error
	Dashboard(ctx context.Context, args []string) error
	Feed(ctx context.Context, args []string) error
	Post(ctx context.Context, args []string) error
	Reply(ctx context.Context, args []string) error
	Like(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
}

const (
	helpGuest    = "Available commands: signup, login, scholarships, courses, dashboard, feed, like, stats, exit"
	helpLoggedIn = "Available commands: whoami, profile, scholarships, courses, dashboard, feed, post, reply, like, stats, logout, exit"
)

// runREPL reads commands line by line and dispatches them to a. The loop
// ends on EOF, on "exit"/"quit" or when ctx is done. Handler errors are
// printed and the loop continues.
//
//	scholarships [words] [provider=X] [category=Y]
//	courses [words] [category=X] [level=Y]
//	reply <post-id>
//	like <post-id>
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "edutalk (%s)> ", statusFn())

		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var handler func(context.Context, []string) error
		switch cmd {
		case "help", "?":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpLoggedIn)
			} else {
				fmt.Fprintln(w, helpGuest)
			}
			continue
		case "signup", "register":
			handler = a.Signup
		case "login":
			handler = a.Login
		case "logout":
			handler = a.Logout
		case "whoami":
			handler = a.WhoAmI
		case "profile":
			handler = a.Profile
		case "scholarships", "s":
			handler = a.Scholarships
		case "courses", "c":
			handler = a.Courses
		case "dashboard", "home":
			handler = a.Dashboard
		case "feed", "f":
			handler = a.Feed
		case "post":
			handler = a.Post
		case "reply":
			handler = a.Reply
		case "like":
			handler = a.Like
		case "stats":
			handler = a.Stats
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
			continue
		}

		if err := handler(ctx, args); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(w, "Error:", err)
		}
	}
}
