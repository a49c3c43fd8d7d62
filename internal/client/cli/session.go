package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/eldercare/internal/common"
)

func (a *App) Welcome(ctx context.Context) error {
	fmt.Fprintln(a.out, "ElderCare keeps your medicines, appointments and health details in one place.")
	fmt.Fprintln(a.out, "  - Medicine reminders")
	fmt.Fprintln(a.out, "  - Appointment calendar")
	fmt.Fprintln(a.out, "  - Emergency SOS and nearby hospitals")

	if err := a.session.CompleteWelcome(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "You're all set. Please 'login' or try 'demo'.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, password); err != nil {
		return err
	}
	a.afterLogin(ctx)
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Demo(ctx context.Context) error {
	if err := a.session.DemoLogin(ctx); err != nil {
		return err
	}
	a.afterLogin(ctx)
	fmt.Fprintln(a.out, "Logged in with the demo account")
	return nil
}

// afterLogin also marks the welcome screen as seen, so the next start goes
// straight to the main screen.
func (a *App) afterLogin(ctx context.Context) {
	if err := a.session.CompleteWelcome(ctx); err != nil {
		a.log.Warn(ctx, "launch flag not saved", "err", err)
	}
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	email, ok, err := a.session.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (storage: %s)\n", email, a.store.Backend())
	return nil
}
