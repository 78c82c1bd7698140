package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/crownstore/internal/filex"
)

const exportDir = "exports"

func (a *App) Subscribe(ctx context.Context, args []string) error {
	sub, err := a.engine.Subscribers.Subscribe(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Subscribed %s (%s). Thank you!\n", sub.Contact, sub.Type)
	return nil
}

// Subscribers prints the counters and the list, filtered by args when
// given.
func (a *App) Subscribers(ctx context.Context, args []string) error {
	st, err := a.engine.Subscribers.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Total %d, emails %d, phones %d, this month %d\n", st.Total, st.Emails, st.Phones, st.ThisMonth)

	subs, err := a.engine.Subscribers.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	for _, s := range subs {
		fmt.Fprintf(a.out, "%-40s %-6s %s  %s\n", s.Contact, s.Type, formatDate(s.SubscribedAt), s.Source)
	}
	return nil
}

// Export writes a dated CSV under ./exports and prints the grouped list.
func (a *App) Export(ctx context.Context) error {
	dir, err := filex.EnsureSubdDir(exportDir)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, fmt.Sprintf("subscribers-%s.csv", time.Now().Format("2006-01-02")))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := a.engine.Subscribers.ExportCSV(ctx, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if err := a.engine.Subscribers.ExportList(ctx, a.out); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\nCSV written to %s\n", path)
	return nil
}
