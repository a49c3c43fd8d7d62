package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/eldercare/internal/client/models"
	"github.com/dmitrijs2005/eldercare/internal/common"
)

func (a *App) Profile(ctx context.Context) error {
	p := a.profile.Get(ctx)
	for _, sec := range a.profile.Fields() {
		fmt.Fprintln(a.out, sec.Title)
		for _, f := range sec.Fields {
			v := p[f.Key]
			if v == "" {
				v = "Not set"
			}
			fmt.Fprintf(a.out, "  %-20s %s  (%s)\n", f.Label+":", v, f.Key)
		}
	}
	return nil
}

func (a *App) Edit(ctx context.Context, field string) error {
	f, ok := models.LookupProfileField(field)
	if !ok {
		return fmt.Errorf("%w: unknown profile field %q", common.ErrorValidation, field)
	}

	v, err := GetSimpleText(a.reader, "New value for "+f.Label, a.out)
	if err != nil {
		return err
	}
	if _, err := a.profile.Update(ctx, field, v); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s updated\n", f.Label)
	return nil
}

func (a *App) Location(ctx context.Context) error {
	loc := a.location.Get(ctx)
	if loc.IsZero() {
		fmt.Fprintln(a.out, "No location saved. Set one with 'setlocation'.")
		return nil
	}
	fmt.Fprintln(a.out, loc)
	return nil
}

func (a *App) SetLocation(ctx context.Context) error {
	var loc models.Location
	var err error

	if loc.Address, err = GetSimpleText(a.reader, "Street address", a.out); err != nil {
		return err
	}
	if loc.City, err = GetSimpleText(a.reader, "City", a.out); err != nil {
		return err
	}
	if loc.ZipCode, err = GetSimpleText(a.reader, "ZIP code (optional)", a.out); err != nil {
		return err
	}

	if err := a.location.Save(ctx, loc); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Location saved")
	return nil
}
