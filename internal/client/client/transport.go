package client

import (
	"context"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/dataflow/internal/client/session"
	"github.com/dmitrijs2005/dataflow/internal/common"
	"github.com/dmitrijs2005/dataflow/internal/logging"
	"github.com/google/uuid"
)

// Route names a top-level surface of the client.
type Route string

// RouteLogin is the credential-entry surface.
const RouteLogin Route = "login"

// Navigator moves the user to another surface.
type Navigator interface {
	Navigate(ctx context.Context, route Route)
}

type ctxKey int

const noRejectionPolicyKey ctxKey = 0

// WithoutRejectionPolicy marks requests made with ctx as exempt from the
// global 401 handling. The bearer token is still attached and the caller
// still gets ErrUnauthorized back.
func WithoutRejectionPolicy(ctx context.Context) context.Context {
	return context.WithValue(ctx, noRejectionPolicyKey, true)
}

func rejectionPolicyDisabled(ctx context.Context) bool {
	v, _ := ctx.Value(noRejectionPolicyKey).(bool)
	return v
}

// authTransport attaches the stored bearer token to every request and runs
// the rejection policy on 401 answers.
type authTransport struct {
	base  http.RoundTripper
	store session.Store
	log   logging.Logger

	mu  sync.Mutex
	nav Navigator
}

func newAuthTransport(base http.RoundTripper, store session.Store, nav Navigator, log logging.Logger) *authTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{base: base, store: store, nav: nav, log: log}
}

func (t *authTransport) setNavigator(nav Navigator) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nav = nav
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	token, err := t.store.Get(ctx)
	if err != nil {
		t.log.Warn(ctx, "session store read failed, sending request without credentials", "error", err)
		token = ""
	}

	r := req.Clone(ctx)
	if token != "" {
		r.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	if r.Body != nil && r.Header.Get("Content-Type") == "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if r.Header.Get("Accept") == "" {
		r.Header.Set("Accept", "application/json")
	}
	if r.Header.Get(common.RequestIDHeaderName) == "" {
		r.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}

	resp, err := t.base.RoundTrip(r)
	if err != nil {
		return nil, err
	}
	if resp.Request == nil {
		resp.Request = r
	}

	if resp.StatusCode == http.StatusUnauthorized && !rejectionPolicyDisabled(ctx) {
		t.reject(ctx, token)
	}

	return resp, nil
}

// reject clears the session and sends the user to the login surface. It
// acts once per token: a rejection arriving after the token was already
// cleared or replaced is ignored.
func (t *authTransport) reject(ctx context.Context, sent string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, err := t.store.Get(ctx)
	if err != nil {
		t.log.Error(ctx, "session store read failed during rejection", "error", err)
		return
	}
	if current == "" || current != sent {
		return
	}

	if err := t.store.Clear(ctx); err != nil {
		t.log.Error(ctx, "failed to clear rejected session", "error", err)
	}
	t.log.Warn(ctx, "backend rejected credentials, session cleared")

	if t.nav != nil {
		t.nav.Navigate(ctx, RouteLogin)
	}
}
