package cli

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/dataflow/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAccounts_Table(t *testing.T) {
	accounts := &fakeAccounts{list: []models.Account{
		{ID: "a1", AccountName: "Shop", Website: "https://shop.example", UserRole: "owner"},
		{ID: "a2", AccountName: "Blog", Website: "http://blog.example", UserRole: "viewer"},
	}}
	app, out, ctx := newTestApp(signedIn("a@b.com"), accounts, "")

	require.NoError(t, app.ListAccounts(ctx))

	got := out.String()
	assert.Contains(t, got, "ID")
	assert.Contains(t, got, "ROLE")
	assert.Regexp(t, `a1\s+Shop\s+https://shop\.example\s+owner`, got)
	assert.Regexp(t, `a2\s+Blog\s+http://blog\.example\s+viewer`, got)
}

func TestListAccounts_Empty(t *testing.T) {
	app, out, ctx := newTestApp(signedIn("a@b.com"), &fakeAccounts{}, "")

	require.NoError(t, app.ListAccounts(ctx))
	assert.Contains(t, out.String(), "No accounts yet")
}

func TestListAccounts_Error(t *testing.T) {
	app, _, ctx := newTestApp(signedIn("a@b.com"), &fakeAccounts{listErr: errors.New("server unavailable")}, "")

	err := app.ListAccounts(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load accounts")
}

func TestCreateAccount(t *testing.T) {
	accounts := &fakeAccounts{}
	app, out, ctx := newTestApp(signedIn("a@b.com"), accounts, "")
	stubInputs(t, "", "Shop", "https://shop.example")

	require.NoError(t, app.CreateAccount(ctx))

	assert.Equal(t, models.NewAccount{AccountName: "Shop", Website: "https://shop.example"}, accounts.created)
	assert.Contains(t, out.String(), "Account created: Shop (new)")
}

func TestCreateAccount_BackendMessage(t *testing.T) {
	accounts := &fakeAccounts{createErr: errors.New("Account name already exists")}
	app, _, ctx := newTestApp(signedIn("a@b.com"), accounts, "")
	stubInputs(t, "", "Shop", "https://shop.example")

	err := app.CreateAccount(ctx)
	require.Error(t, err)
	assert.Equal(t, "Account name already exists", err.Error())
}

func TestShowAccount_DashboardShowsStatistics(t *testing.T) {
	accounts := &fakeAccounts{
		byID:  map[string]models.Account{"a1": {ID: "a1", AccountName: "Shop", Website: "https://shop.example", UserRole: "owner"}},
		stats: models.Statistics{Success: 8, Failed: 1, Pending: 1},
	}
	app, out, ctx := newTestApp(signedIn("a@b.com"), accounts, "")

	require.NoError(t, app.ShowAccount(ctx, "a1", ""))

	got := out.String()
	assert.Contains(t, got, "Shop")
	assert.Contains(t, got, "[Dashboard]")
	assert.Regexp(t, `Total events\s+10`, got)
	assert.Regexp(t, `Success rate\s+80\.0%`, got)
}

func TestShowAccount_OtherTabs(t *testing.T) {
	accounts := &fakeAccounts{
		byID: map[string]models.Account{"a1": {ID: "a1", AccountName: "Shop"}},
	}
	app, out, ctx := newTestApp(signedIn("a@b.com"), accounts, "")

	require.NoError(t, app.ShowAccount(ctx, "a1", "members"))

	got := out.String()
	assert.Contains(t, got, "[Members]")
	assert.Contains(t, got, "Members: nothing to show yet.")
	assert.NotContains(t, got, "Total events")
}

func TestShowAccount_NotFound(t *testing.T) {
	app, _, ctx := newTestApp(signedIn("a@b.com"), &fakeAccounts{}, "")

	err := app.ShowAccount(ctx, "zzz", "")
	require.Error(t, err)
	assert.Equal(t, "account not found", err.Error())
}

func TestShowStatistics_ZeroTotal(t *testing.T) {
	app, out, ctx := newTestApp(signedIn("a@b.com"), &fakeAccounts{}, "")

	require.NoError(t, app.ShowStatistics(ctx, "a1"))
	assert.Regexp(t, `Success rate\s+0\.0%`, out.String())
}

func TestShowStatistics_Error(t *testing.T) {
	app, _, ctx := newTestApp(signedIn("a@b.com"), &fakeAccounts{statsErr: errors.New("boom")}, "")

	err := app.ShowStatistics(ctx, "a1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load statistics")
}
