package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/dataflow/internal/client/auth"
	"github.com/dmitrijs2005/dataflow/internal/client/models"
	"github.com/dmitrijs2005/dataflow/internal/client/session"
	"github.com/dmitrijs2005/dataflow/internal/common"
)

var errNotFound = common.ErrorNotFound

// stubInputs answers text prompts from texts in order and the password prompt
// with password. It returns the password slice so tests can check wiping.
func stubInputs(t *testing.T, password string, texts ...string) []byte {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})

	queue := append([]string(nil), texts...)
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(queue) == 0 {
			return "", io.EOF
		}
		next := queue[0]
		queue = queue[1:]
		return next, nil
	}
	pw := []byte(password)
	getPassword = func(_ *bufio.Reader, _ io.Writer) ([]byte, error) { return pw, nil }
	return pw
}

// capturePrintln collects everything printed through printlnFn.
func capturePrintln(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&buf, a...) }
	t.Cleanup(func() { printlnFn = orig })
	return &buf
}

type fakeProvider struct {
	mu sync.Mutex

	session auth.Session

	loginEmail, loginPassword string
	loginErr                  error
	registerEmail             string
	registerErr               error
	logoutCalls               int
	subscribed                int
}

func signedIn(email string) *fakeProvider {
	return &fakeProvider{session: auth.Session{
		Token: "abc",
		User:  &auth.User{ID: "1", Email: email},
		State: auth.StateAuthenticated,
	}}
}

func anonymous() *fakeProvider {
	return &fakeProvider{session: auth.Session{State: auth.StateAnonymous}}
}

func (f *fakeProvider) Session(context.Context) auth.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

func (f *fakeProvider) Login(_ context.Context, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginEmail, f.loginPassword = email, password
	if f.loginErr == nil {
		f.session = auth.Session{Token: "t", User: &auth.User{ID: "2", Email: email}, State: auth.StateAuthenticated}
	}
	return f.loginErr
}

func (f *fakeProvider) Register(_ context.Context, email, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerEmail = email
	if f.registerErr == nil {
		f.session = auth.Session{Token: "t", User: &auth.User{ID: "3", Email: email}, State: auth.StateAuthenticated}
	}
	return f.registerErr
}

func (f *fakeProvider) Logout(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	f.session = auth.Session{State: auth.StateAnonymous}
}

func (f *fakeProvider) Subscribe() (<-chan auth.Session, func()) {
	f.mu.Lock()
	f.subscribed++
	f.mu.Unlock()
	ch := make(chan auth.Session)
	var once sync.Once
	return ch, func() { once.Do(func() { close(ch) }) }
}

type fakeAccounts struct {
	list      []models.Account
	listErr   error
	byID      map[string]models.Account
	stats     models.Statistics
	statsErr  error
	created   models.NewAccount
	createErr error
}

func (f *fakeAccounts) List(context.Context) ([]models.Account, error) {
	return f.list, f.listErr
}

func (f *fakeAccounts) Create(_ context.Context, name, website string) (*models.Account, error) {
	f.created = models.NewAccount{AccountName: name, Website: website}
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Account{ID: "new", AccountName: name, Website: website, UserRole: "owner"}, nil
}

func (f *fakeAccounts) Get(_ context.Context, id string) (*models.Account, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", id, errNotFound)
	}
	return &a, nil
}

func (f *fakeAccounts) Statistics(context.Context, string) (*models.Statistics, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	s := f.stats
	return &s, nil
}

// timestampedStore is a memory store that also reports a fixed save time.
type timestampedStore struct {
	*session.MemoryStore
	at  time.Time
	err error
}

func (s *timestampedStore) SavedAt(context.Context) (time.Time, error) {
	return s.at, s.err
}

// newTestApp builds an App writing to a buffer with p installed in ctx.
func newTestApp(p auth.SessionProvider, accounts *fakeAccounts, input string) (*App, *bytes.Buffer, context.Context) {
	var out bytes.Buffer
	if accounts == nil {
		accounts = &fakeAccounts{}
	}
	app := NewApp(accounts, strings.NewReader(input), &out, nil)
	return app, &out, auth.WithProvider(context.Background(), p)
}
