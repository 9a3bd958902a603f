package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dataflow/internal/client/models"
	"github.com/dmitrijs2005/dataflow/internal/common"
)

// ListAccounts prints the accounts the user belongs to.
func (a *App) ListAccounts(ctx context.Context) error {
	accounts, err := a.accounts.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}

	if len(accounts) == 0 {
		dimColor.Fprintln(a.out, "No accounts yet. Create your first account with 'create'.")
		return nil
	}

	printAccounts(a.out, accounts)
	return nil
}

// CreateAccount prompts for a name and website and creates the account.
func (a *App) CreateAccount(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Account name", a.out)
	if err != nil {
		return err
	}
	website, err := getSimpleText(a.reader, "Website (https://example.com)", a.out)
	if err != nil {
		return err
	}

	acc, err := a.accounts.Create(ctx, name, website)
	if err != nil {
		return err
	}

	okColor.Fprintf(a.out, "Account created: %s (%s)\n", acc.AccountName, acc.ID)
	return nil
}

// ShowAccount opens the workspace of one account on the given tab.
func (a *App) ShowAccount(ctx context.Context, id, tab string) error {
	acc, err := a.accounts.Get(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return errors.New("account not found")
	}
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}

	current := models.ParseTab(tab)
	printAccountHeader(a.out, acc, current)

	if current != models.TabDashboard {
		dimColor.Fprintf(a.out, "%s: nothing to show yet.\n", current.Title())
		return nil
	}
	return a.ShowStatistics(ctx, acc.ID)
}

// ShowStatistics prints the forwarding statistics of an account.
func (a *App) ShowStatistics(ctx context.Context, id string) error {
	stats, err := a.accounts.Statistics(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load statistics: %w", err)
	}
	printStatistics(a.out, stats)
	return nil
}
