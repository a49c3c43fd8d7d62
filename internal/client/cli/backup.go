package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eldercare/internal/client/backup"
	"github.com/dmitrijs2005/eldercare/internal/client/storage"
)

func (a *App) Backup(ctx context.Context) error {
	snap, err := backup.Export(ctx, a.store, a.now())
	if err != nil {
		return err
	}
	loc, err := a.backups.Save(ctx, snap)
	if err != nil {
		return err
	}
	a.log.Info(ctx, "backup saved", "location", loc, "entries", len(snap.Entries))
	fmt.Fprintf(a.out, "Backed up %d entries to %s\n", len(snap.Entries), loc)
	return nil
}

// Restore replaces all stored data with the latest backup.
func (a *App) Restore(ctx context.Context) error {
	snap, err := a.backups.Latest(ctx)
	if errors.Is(err, backup.ErrNoSnapshot) {
		fmt.Fprintln(a.out, "No backup found")
		return nil
	}
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Replace all data with the backup from %s?", snap.CreatedAt.Local().Format("2006-01-02 15:04")), a.out)
	if err != nil || !ok {
		return err
	}

	if err := backup.Restore(ctx, a.store, snap); err != nil {
		return err
	}
	a.syncReminders(ctx)
	fmt.Fprintf(a.out, "Restored %d entries\n", len(snap.Entries))
	return nil
}

// Reset deletes every stored value, which also ends the session.
func (a *App) Reset(ctx context.Context) error {
	l, ok := a.store.(storage.Lister)
	if !ok {
		return backup.ErrListUnsupported
	}

	ok, err := Confirm(a.reader, "Delete all stored data?", a.out)
	if err != nil || !ok {
		return err
	}

	if err := l.Clear(ctx); err != nil {
		return err
	}
	if err := a.session.Logout(ctx); err != nil {
		a.log.Warn(ctx, "session token not cleared", "err", err)
	}
	if a.reminders != nil {
		a.reminders.Sync(ctx, nil)
	}
	fmt.Fprintln(a.out, "All data deleted")
	return nil
}
