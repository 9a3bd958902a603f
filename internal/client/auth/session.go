package auth

import (
	"context"
	"errors"
)

var (
	// ErrEmptyToken is returned when the backend accepted credentials but
	// issued no token.
	ErrEmptyToken = errors.New("backend issued an empty token")

	// ErrIdentityUnresolved is returned by Login and Register when the token
	// was issued and persisted but the identity fetch that follows failed.
	// The token stays stored; the session has no user until the next
	// successful fetch.
	ErrIdentityUnresolved = errors.New("token issued but identity could not be resolved")
)

type State int

const (
	StateUninitialized State = iota
	StateValidating
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateValidating:
		return "validating"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// User is the identity behind a token as reported by /api/auth/me.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is a point-in-time snapshot of the controller.
type Session struct {
	Token   string
	User    *User
	Loading bool
	State   State
}

// Authenticated reports whether both a token and its identity are known.
func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// SessionProvider is what the rest of the client sees of the session.
type SessionProvider interface {
	Session(ctx context.Context) Session
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, email, password string) error
	Logout(ctx context.Context)
	Subscribe() (<-chan Session, func())
}

type providerKey struct{}

// WithProvider returns a context carrying p.
func WithProvider(ctx context.Context, p SessionProvider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

// FromContext returns the provider installed with WithProvider.
func FromContext(ctx context.Context) (SessionProvider, bool) {
	p, ok := ctx.Value(providerKey{}).(SessionProvider)
	return p, ok && p != nil
}

// MustFromContext is FromContext for callers that cannot work without a
// session. It panics when the composition root never installed one.
func MustFromContext(ctx context.Context) SessionProvider {
	p, ok := FromContext(ctx)
	if !ok {
		panic("auth: SessionProvider not found in context")
	}
	return p
}
