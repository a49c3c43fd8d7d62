package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/eldercare/internal/common"
)

func (a *App) Meds(ctx context.Context) error {
	meds, err := a.medicines.List(ctx)
	if err != nil {
		return err
	}
	if len(meds) == 0 {
		fmt.Fprintln(a.out, "No medicines yet. Add one with 'addmed'.")
		return nil
	}

	taken := 0
	for _, m := range meds {
		fmt.Fprintln(a.out, m)
		if m.Taken {
			taken++
		}
	}
	fmt.Fprintf(a.out, "Taken today: %d/%d\n", taken, len(meds))
	return nil
}

func (a *App) AddMed(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Medicine name", a.out)
	if err != nil {
		return err
	}
	dosage, err := GetSimpleText(a.reader, "Dosage (e.g. 500mg)", a.out)
	if err != nil {
		return err
	}
	timing, err := GetSimpleText(a.reader, "Timing (e.g. 8:00 AM, 8:00 PM)", a.out)
	if err != nil {
		return err
	}

	m, err := a.medicines.Add(ctx, name, dosage, timing)
	if err != nil {
		return err
	}
	a.syncReminders(ctx)
	fmt.Fprintf(a.out, "Added %s (id %d)\n", m.Name, m.ID)
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an id", common.ErrorValidation, s)
	}
	return id, nil
}

func (a *App) Take(ctx context.Context, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	m, err := a.medicines.ToggleTaken(ctx, n)
	if err != nil {
		return err
	}
	if m.Taken {
		fmt.Fprintf(a.out, "Marked %s as taken\n", m.Name)
	} else {
		fmt.Fprintf(a.out, "Marked %s as not taken\n", m.Name)
	}
	return nil
}

func (a *App) DelMed(ctx context.Context, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	if err := a.medicines.Delete(ctx, n); err != nil {
		return err
	}
	a.syncReminders(ctx)
	fmt.Fprintln(a.out, "Medicine deleted")
	return nil
}
