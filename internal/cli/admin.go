package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/learnify/internal/views"
)

func (a *App) adminView(ctx context.Context) views.AdminView {
	return views.Admin(a.progress.Load(ctx), a.tutorials, a.loc)
}

// Admin prints the users table and the message log.
func (a *App) Admin(ctx context.Context) error {
	v := a.adminView(ctx)

	a.println("Users")
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tCOMPLETED\tQUIZ\tMESSAGES")
	for _, u := range v.Users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", u.Username, u.Completed, u.Quiz, u.Messages)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	a.println()
	a.println("Messages")
	tw = tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tNAME\tEMAIL\tMESSAGE\tAT")
	for _, m := range v.Messages {
		// keep multi-line messages on one table row
		msg := strings.ReplaceAll(m.Message, "\n", " ")
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.User, m.Name, m.Email, msg, m.At)
	}
	return tw.Flush()
}

// AdminReset wipes all progress and messages after confirmation. Accounts
// and the session are kept.
func (a *App) AdminReset(ctx context.Context) error {
	if !a.confirm("Reset ALL Learnify data (progress, messages)?") {
		return nil
	}
	a.progress.ResetAll(ctx)
	a.println("All Learnify data cleared.")
	return a.Admin(ctx)
}

// Export writes the admin tables to an .xlsx workbook.
func (a *App) Export(ctx context.Context, path string) error {
	if err := views.ExportAdminXLSX(a.adminView(ctx), path); err != nil {
		return err
	}
	a.printf("Exported admin tables to %s\n", path)
	return nil
}
