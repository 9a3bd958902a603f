package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dataflow/internal/client/auth"
	"github.com/dmitrijs2005/dataflow/internal/client/client"
	"github.com/dmitrijs2005/dataflow/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// credentialsFn is Login or Register of the SessionProvider.
type credentialsFn func(ctx context.Context, email, password string) error

// Register prompts for an email and password and creates an account.
func (a *App) Register(ctx context.Context) error {
	return a.authenticate(ctx, a.provider(ctx).Register, "Account created")
}

// Login prompts for credentials and signs in. An empty email skips the
// prompt, so new users can go on to register.
func (a *App) Login(ctx context.Context) error {
	return a.authenticate(ctx, a.provider(ctx).Login, "Signed in")
}

func (a *App) authenticate(ctx context.Context, call credentialsFn, done string) error {
	email, err := getSimpleText(a.reader, "Enter email (empty to skip)", a.out)
	if err != nil {
		return err
	}
	if email == "" {
		dimColor.Fprintln(a.out, "Skipped. Type 'login' or 'register' when ready.")
		return nil
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = call(ctx, email, string(password))
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return fmt.Errorf("sign-in failed: %w", err)
	case errors.Is(err, auth.ErrIdentityUnresolved):
		warnColor.Fprintln(a.out, "Signed in, but your profile could not be loaded. Try 'whoami' later.")
		return nil
	case err != nil:
		return err
	}

	s := a.provider(ctx).Session(ctx)
	if s.User != nil {
		okColor.Fprintf(a.out, "%s as %s\n", done, s.User.Email)
	} else {
		okColor.Fprintln(a.out, done)
	}
	return nil
}

// Logout ends the session. It cannot fail; the error is for execIface.
func (a *App) Logout(ctx context.Context) error {
	a.provider(ctx).Logout(ctx)
	okColor.Fprintln(a.out, "Signed out.")
	return nil
}

// WhoAmI prints the current session.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.provider(ctx).Session(ctx)

	switch {
	case s.Loading:
		dimColor.Fprintln(a.out, "Loading session...")
	case s.Authenticated():
		headingColor.Fprintln(a.out, s.User.Email)
		dimColor.Fprintf(a.out, "User ID: %s\n", s.User.ID)
		a.describeSavedAt(ctx)
		a.describeToken(s.Token)
	case s.Token != "":
		warnColor.Fprintln(a.out, "Signed in, profile not loaded.")
		a.describeSavedAt(ctx)
		a.describeToken(s.Token)
	default:
		printlnFn("Not signed in.")
	}
	return nil
}
