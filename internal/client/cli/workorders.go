package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/wotracker/internal/client/client"
)

// List prints one page of the work orders visible to the signed-in user.
// args may hold a 1-based page number.
func (a *App) List(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	page := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return errors.New("usage: list [page], page must be a positive number")
		}
		page = n
	}

	p, err := a.client.ListWorkOrders(ctx, page, defaultPageSize)
	if err != nil {
		return a.sessionError(err)
	}

	if len(p.Items) == 0 {
		fmt.Fprintln(a.out, "No work orders")
	} else {
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NUMBER\tSTATUS\tPROJECT\tTYPE\tDUE\tTITLE")
		for _, wo := range p.Items {
			due := ""
			if wo.DueDate != nil {
				due = wo.DueDate.Format("2006-01-02")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", wo.Number, wo.Status, wo.Project, wo.Type, due, wo.Title)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	fmt.Fprintf(a.out, "Page %d of %d (%d work orders)\n", p.CurrentPage, p.TotalPages, p.TotalCount)
	return nil
}

// History prints the history entries of the work order named in args.
func (a *App) History(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	if len(args) == 0 {
		return errors.New("usage: history <WO>")
	}

	entries, err := a.client.History(ctx, args[0])
	if err != nil {
		return a.sessionError(err)
	}

	if len(entries) == 0 {
		fmt.Fprintf(a.out, "No history for %s\n", args[0])
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(a.out, "#%d %s\n", e.ID, e.Description)
	}
	return nil
}

// sessionError forgets the local user when the server rejected the token.
func (a *App) sessionError(err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		a.userName = ""
		return errors.New("session expired, log in again")
	}
	return err
}
