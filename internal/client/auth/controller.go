package auth

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrijs2005/dataflow/internal/client/client"
	"github.com/dmitrijs2005/dataflow/internal/client/session"
	"github.com/dmitrijs2005/dataflow/internal/logging"
)

const (
	pathLogin    = "/api/auth/login"
	pathRegister = "/api/auth/register"
	pathMe       = "/api/auth/me"
	pathLogout   = "/api/auth/logout"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type issued struct {
	Token string `json:"token"`
}

// Controller holds the session state. The mutex guards in-memory fields
// only and is never held across a network call.
type Controller struct {
	store session.Store
	api   client.Client
	log   logging.Logger

	mu      sync.Mutex
	state   State
	token   string
	user    *User
	subs    map[int]chan Session
	nextSub int
}

var _ SessionProvider = (*Controller)(nil)

func NewController(store session.Store, api client.Client, log logging.Logger) *Controller {
	if log == nil {
		log = logging.Discard()
	}
	return &Controller{
		store: store,
		api:   api,
		log:   log,
		state: StateUninitialized,
		subs:  make(map[int]chan Session),
	}
}

// Init resolves the stored token, if any, into an identity. A token the
// backend no longer accepts is dropped quietly; Init never reports an error
// and never triggers the gateway's login redirect.
func (c *Controller) Init(ctx context.Context) {
	token, err := c.store.Get(ctx)
	if err != nil {
		c.log.Error(ctx, "session store unreadable, starting anonymous", "error", err)
		c.update(func() { c.resetLocked() })
		return
	}

	if token == "" {
		c.update(func() { c.resetLocked() })
		return
	}

	c.update(func() {
		c.state = StateValidating
		c.token = token
		c.user = nil
	})

	user, err := c.fetchUser(client.WithoutRejectionPolicy(ctx))
	if err != nil {
		c.log.Info(ctx, "stored session is no longer valid", "error", err)
		if err := c.store.Clear(ctx); err != nil {
			c.log.Error(ctx, "failed to clear invalid session", "error", err)
		}
		c.update(func() {
			if c.token == token {
				c.resetLocked()
			}
		})
		return
	}

	c.update(func() {
		if c.token == token {
			c.state = StateAuthenticated
			c.user = user
		}
	})
	c.log.Info(ctx, "session restored", "email", user.Email)
}

// Login exchanges credentials for a token and resolves its identity.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	return c.issue(ctx, pathLogin, email, password)
}

// Register creates an account and signs in with the token it returns.
func (c *Controller) Register(ctx context.Context, email, password string) error {
	return c.issue(ctx, pathRegister, email, password)
}

func (c *Controller) issue(ctx context.Context, path, email, password string) error {
	var out issued
	if err := c.api.Do(ctx, http.MethodPost, path, credentials{Email: email, Password: password}, &out); err != nil {
		return err
	}
	if out.Token == "" {
		return ErrEmptyToken
	}

	// the identity fetch below reads the token back from the store
	if err := c.store.Set(ctx, out.Token); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	c.update(func() {
		c.token = out.Token
		c.user = nil
		c.state = StateAnonymous
	})

	user, err := c.fetchUser(ctx)
	if err != nil {
		c.log.Warn(ctx, "token issued but identity fetch failed", "email", email, "error", err)
		return fmt.Errorf("%w: %w", ErrIdentityUnresolved, err)
	}

	c.update(func() {
		if c.token == out.Token {
			c.user = user
			c.state = StateAuthenticated
		}
	})
	c.log.Info(ctx, "signed in", "email", user.Email)
	return nil
}

// Logout ends the session locally whatever the backend answers.
func (c *Controller) Logout(ctx context.Context) {
	_ = c.invalidateRemote(ctx)

	if err := c.store.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to clear session store", "error", err)
	}
	c.update(func() { c.resetLocked() })
	c.log.Info(ctx, "signed out")
}

// invalidateRemote asks the backend to revoke the current token. Its error
// is informational only.
func (c *Controller) invalidateRemote(ctx context.Context) error {
	err := c.api.Do(ctx, http.MethodPost, pathLogout, nil, nil)
	if err != nil {
		c.log.Warn(ctx, "logout request failed", "error", err)
	}
	return err
}

// Session returns the current snapshot, first reconciling it with the
// store: a token cleared or replaced behind the controller's back (the
// gateway's 401 handling) is reflected here.
func (c *Controller) Session(ctx context.Context) Session {
	c.mu.Lock()
	loading := c.state == StateUninitialized || c.state == StateValidating
	c.mu.Unlock()
	if loading {
		return c.snapshot()
	}

	stored, err := c.store.Get(ctx)
	if err != nil {
		c.log.Warn(ctx, "session store unreadable", "error", err)
		return c.snapshot()
	}

	c.update(func() {
		switch {
		case stored == c.token:
		case stored == "":
			c.resetLocked()
		default:
			c.token = stored
			c.user = nil
			c.state = StateAnonymous
		}
	})
	return c.snapshot()
}

// Subscribe returns a channel that receives the latest snapshot after each
// state change. Undelivered snapshots are replaced by newer ones. The
// returned func unsubscribes and closes the channel.
func (c *Controller) Subscribe() (<-chan Session, func()) {
	ch := make(chan Session, 1)

	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (c *Controller) fetchUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.api.Do(ctx, http.MethodGet, pathMe, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// update applies fn under the lock and notifies subscribers when the
// snapshot changed.
func (c *Controller) update(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.snapshotLocked()
	fn()
	after := c.snapshotLocked()

	if sameSession(before, after) {
		return
	}
	for _, ch := range c.subs {
		publish(ch, after)
	}
}

func (c *Controller) resetLocked() {
	c.state = StateAnonymous
	c.token = ""
	c.user = nil
}

func (c *Controller) snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Session {
	s := Session{
		Token:   c.token,
		State:   c.state,
		Loading: c.state == StateUninitialized || c.state == StateValidating,
	}
	if c.user != nil {
		u := *c.user
		s.User = &u
	}
	return s
}

func sameSession(a, b Session) bool {
	if a.Token != b.Token || a.State != b.State || a.Loading != b.Loading {
		return false
	}
	if (a.User == nil) != (b.User == nil) {
		return false
	}
	return a.User == nil || *a.User == *b.User
}

// publish replaces any pending snapshot with s without blocking.
func publish(ch chan Session, s Session) {
	for {
		select {
		case ch <- s:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
