package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/dataflow/internal/client/auth"
	"github.com/dmitrijs2005/dataflow/internal/client/client"
	"github.com/dmitrijs2005/dataflow/internal/client/services"
	"github.com/dmitrijs2005/dataflow/internal/client/session"
	"github.com/dmitrijs2005/dataflow/internal/logging"
)

// App is the interactive client. It reads the session through the
// SessionProvider stored in the context and doubles as the gateway's
// Navigator: a rejected token schedules the login prompt.
type App struct {
	accounts services.AccountService
	reader   *bufio.Reader
	out      io.Writer
	log      logging.Logger
	store    session.Store

	mu            sync.Mutex
	loginRequired bool
}

var _ client.Navigator = (*App)(nil)

func NewApp(accounts services.AccountService, in io.Reader, out io.Writer, log logging.Logger) *App {
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		accounts: accounts,
		reader:   bufio.NewReader(in),
		out:      out,
		log:      log,
	}
}

// SetSessionStore gives whoami access to the store, so it can show when
// the token was saved.
func (a *App) SetSessionStore(store session.Store) {
	a.store = store
}

// Navigate records a redirect; the REPL acts on it before the next prompt.
func (a *App) Navigate(ctx context.Context, route client.Route) {
	if route != client.RouteLogin {
		a.log.Debug(ctx, "ignoring navigation", "route", string(route))
		return
	}
	a.mu.Lock()
	a.loginRequired = true
	a.mu.Unlock()
}

// takeLoginRedirect reports and resets a pending login redirect.
func (a *App) takeLoginRedirect() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	r := a.loginRequired
	a.loginRequired = false
	return r
}

func (a *App) provider(ctx context.Context) auth.SessionProvider {
	return auth.MustFromContext(ctx)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.provider(ctx).Session(ctx).Authenticated()
}

func (a *App) status(ctx context.Context) string {
	s := a.provider(ctx).Session(ctx)
	switch {
	case s.Loading:
		return "loading"
	case s.User != nil:
		return s.User.Email
	case s.Token != "":
		return "unresolved"
	default:
		return "anonymous"
	}
}

// Run starts the client. With args it executes that single command and
// returns; otherwise it opens the REPL, asking anonymous users to log in
// first.
func (a *App) Run(ctx context.Context, args []string) {
	if len(args) > 0 {
		dispatch(ctx, a, args)
		if a.takeLoginRedirect() {
			errColor.Fprintln(a.out, "Session expired, please log in")
		}
		return
	}

	headingColor.Fprintln(a.out, "Welcome to dataflow CLI (type 'help' for commands)")

	stop := a.watchSession(ctx)
	defer stop()

	if !a.isLoggedIn(ctx) {
		a.report(a.Login(ctx))
	}

	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader)
}

// watchSession logs every session transition until the returned func is
// called.
func (a *App) watchSession(ctx context.Context) func() {
	updates, cancel := a.provider(ctx).Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range updates {
			a.log.Debug(ctx, "session changed", "state", s.State.String(), "loading", s.Loading)
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

func (a *App) report(err error) {
	if err == nil {
		return
	}
	errColor.Fprintln(a.out, "Error:", strings.TrimSpace(err.Error()))
}

// describeSavedAt prints when the token was saved, if the store records it.
func (a *App) describeSavedAt(ctx context.Context) {
	ts, ok := a.store.(session.Timestamped)
	if !ok {
		return
	}
	at, err := ts.SavedAt(ctx)
	if err != nil {
		a.log.Warn(ctx, "failed to read token save time", "error", err)
		return
	}
	if !at.IsZero() {
		dimColor.Fprintf(a.out, "Signed in since: %s\n", at.Local().Format("2006-01-02 15:04:05"))
	}
}

// describeToken prints what can be read from a JWT without its key.
func (a *App) describeToken(token string) {
	d, ok := session.Describe(token)
	if !ok {
		return
	}
	if d.Subject != "" {
		dimColor.Fprintf(a.out, "Token subject: %s\n", d.Subject)
	}
	if !d.ExpiresAt.IsZero() {
		dimColor.Fprintf(a.out, "Token expires: %s\n", d.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
	}
}
