package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/edutalk/internal/events"
	"github.com/dmitrijs2005/edutalk/internal/logging"
	"github.com/dmitrijs2005/edutalk/internal/models"
	"github.com/go-playground/validator"
	"github.com/prometheus/client_golang/prometheus"
)

// Sessions is the part of the session store the client uses.
type Sessions interface {
	Login(ctx context.Context, email, secret string) (bool, error)
	Signup(ctx context.Context, draft models.SignupDraft) (bool, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) error
	Current() (models.Profile, bool)
	Subscribe(fn events.Handler) func()
}

// Content is the part of the content store the client uses.
type Content interface {
	AddPost(ctx context.Context, authorID, authorName, title, content string) (models.CommunityPost, error)
	AddReply(ctx context.Context, postID, authorID, authorName, content string) error
	LikePost(ctx context.Context, postID string) error
	Scholarships() []models.Scholarship
	Courses() []models.Course
	Posts() []models.CommunityPost
	Post(id string) (models.CommunityPost, error)
	Subscribe(fn events.Handler) func()
}

type Options struct {
	In      io.Reader
	Out     io.Writer
	Logger  logging.Logger
	Metrics prometheus.Gatherer
}

type App struct {
	sessions Sessions
	content  Content
	metrics  prometheus.Gatherer
	log      logging.Logger
	reader   *bufio.Reader
	fd       int
	out      io.Writer
	validate *validator.Validate
}

func NewApp(sessions Sessions, content Content, opts Options) *App {
	a := &App{
		sessions: sessions,
		content:  content,
		metrics:  opts.Metrics,
		log:      opts.Logger,
		out:      opts.Out,
		validate: newValidator(),
	}
	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	a.reader = bufio.NewReader(in)
	a.fd = terminalFd(in)
	if a.out == nil {
		a.out = os.Stdout
	}
	if a.log == nil {
		a.log = logging.Discard()
	}
	return a
}

// Run blocks in the REPL until the user exits, the input ends or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.sessions.Subscribe(a.notify)()
	defer a.content.Subscribe(a.notify)()

	fmt.Fprintln(a.out, "Welcome to EduTalk (type 'help' for commands)")
	if p, ok := a.sessions.Current(); ok {
		fmt.Fprintf(a.out, "Signed in as %s <%s>\n", p.Name, p.Email)
	}

	a.log.Debug(ctx, "repl started", "interactive", a.fd >= 0)
	runREPL(ctx, a, a.status, a.reader, a.out)
	a.log.Debug(ctx, "repl finished")
}

func (a *App) isLoggedIn() bool {
	_, ok := a.sessions.Current()
	return ok
}

func (a *App) status() string {
	if p, ok := a.sessions.Current(); ok {
		return p.Email
	}
	return "guest"
}

// notify prints store change events.
func (a *App) notify(e events.Event) {
	switch e.Kind {
	case events.SessionChanged:
		switch e.Op {
		case "logout":
			fmt.Fprintln(a.out, "* signed out")
		default:
			if p, ok := a.sessions.Current(); ok {
				fmt.Fprintf(a.out, "* session: %s (%s)\n", p.Name, e.Op)
			}
		}
	case events.FeedChanged:
		fmt.Fprintf(a.out, "* feed updated: %s %s\n", e.Op, e.Target)
	}
}
