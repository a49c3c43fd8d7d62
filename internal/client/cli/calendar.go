package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/eldercare/internal/client/models"
	"github.com/dmitrijs2005/eldercare/internal/client/services"
	"github.com/dmitrijs2005/eldercare/internal/common"
)

const monthLayout = "2006-01"

// Calendar prints a month grid; days with appointments carry a '*'.
func (a *App) Calendar(ctx context.Context, month string) error {
	m := a.now()
	if month != "" {
		var err error
		if m, err = time.Parse(monthLayout, month); err != nil {
			return fmt.Errorf("%w: month must be YYYY-MM", common.ErrorValidation)
		}
	}

	appts := a.appts.All(ctx)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", m.Format("January 2006"))
	b.WriteString(" Su  Mo  Tu  We  Th  Fr  Sa\n")
	for i, d := range services.MonthGrid(m) {
		switch {
		case d == 0:
			b.WriteString("    ")
		default:
			key := time.Date(m.Year(), m.Month(), d, 0, 0, 0, 0, time.UTC).Format(models.DateLayout)
			mark := " "
			if len(appts[key]) > 0 {
				mark = "*"
			}
			fmt.Fprintf(&b, " %2d%s", d, mark)
		}
		if i%7 == 6 {
			b.WriteString("\n")
		}
	}
	fmt.Fprintln(a.out, strings.TrimRight(b.String(), "\n"))
	return nil
}

// Appts lists one day, or everything from today on when date is empty.
func (a *App) Appts(ctx context.Context, date string) error {
	if date != "" {
		if _, err := models.ParseDate(date); err != nil {
			return fmt.Errorf("%w: date must be YYYY-MM-DD", common.ErrorValidation)
		}
		day := a.appts.On(ctx, date)
		if len(day) == 0 {
			fmt.Fprintf(a.out, "No appointments on %s\n", date)
			return nil
		}
		for _, ap := range day {
			fmt.Fprintln(a.out, ap)
		}
		return nil
	}

	upcoming := a.appts.Upcoming(ctx, a.now(), 0)
	if len(upcoming) == 0 {
		fmt.Fprintln(a.out, "No upcoming appointments")
		return nil
	}
	for _, ap := range upcoming {
		fmt.Fprintf(a.out, "%s  %s\n", ap.Date, ap.Appointment)
	}
	return nil
}

func (a *App) AddAppt(ctx context.Context) error {
	date, err := GetTextOr(a.reader, "Date (YYYY-MM-DD)", a.now().Format(models.DateLayout), a.out)
	if err != nil {
		return err
	}
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	at, err := GetSimpleText(a.reader, "Time (e.g. 10:00 AM)", a.out)
	if err != nil {
		return err
	}
	notes, err := GetSimpleText(a.reader, "Notes (optional)", a.out)
	if err != nil {
		return err
	}

	ap, err := a.appts.Add(ctx, date, title, at, notes)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s on %s (id %d)\n", ap.Title, date, ap.ID)
	return nil
}

func (a *App) DelAppt(ctx context.Context, date, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	if err := a.appts.Delete(ctx, date, n); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Appointment deleted")
	return nil
}
