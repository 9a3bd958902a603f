package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/dataflow/internal/client/models"
	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	okColor      = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errColor     = color.New(color.FgRed)
	dimColor     = color.New(color.Faint)
)

func printAccounts(w io.Writer, accounts []models.Account) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tWEBSITE\tROLE")
	for _, a := range accounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.AccountName, a.Website, a.UserRole)
	}
	_ = tw.Flush()
}

func printAccountHeader(w io.Writer, a *models.Account, current models.WorkspaceTab) {
	headingColor.Fprintln(w, a.AccountName)
	dimColor.Fprintf(w, "%s  (%s)\n", a.Website, a.UserRole)

	for i, t := range models.WorkspaceTabs {
		if i > 0 {
			fmt.Fprint(w, " | ")
		}
		if t == current {
			headingColor.Fprintf(w, "[%s]", t.Title())
		} else {
			fmt.Fprint(w, t.Title())
		}
	}
	fmt.Fprintln(w)
}

func printStatistics(w io.Writer, s *models.Statistics) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total events\t%d\n", s.Total())
	fmt.Fprintf(tw, "Successful\t%s\n", okColor.Sprint(s.Success))
	fmt.Fprintf(tw, "Failed\t%s\n", errColor.Sprint(s.Failed))
	fmt.Fprintf(tw, "Pending\t%s\n", warnColor.Sprint(s.Pending))
	fmt.Fprintf(tw, "Success rate\t%s%%\n", s.SuccessRate())
	_ = tw.Flush()
}
