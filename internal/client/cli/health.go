package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/eldercare/internal/client/services"
	"github.com/dmitrijs2005/eldercare/internal/client/vitals"
	"github.com/dmitrijs2005/eldercare/internal/common"
)

func (a *App) Hospitals(ctx context.Context) error {
	fmt.Fprintf(a.out, "Emergency: %s\n", services.EmergencyNumber)
	for _, h := range a.hospitals.Nearby() {
		fmt.Fprintf(a.out, "%s  %.1f mi  rating %.1f\n  %s  tel %s\n", h.Name, h.DistanceMiles, h.Rating, h.Address, h.Phone)
	}
	return nil
}

// Heart shows the latest n heart-rate readings, newest last, and today's
// activity.
func (a *App) Heart(ctx context.Context, n string) error {
	limit := vitals.HistorySize
	if n != "" {
		v, err := strconv.Atoi(n)
		if err != nil || v <= 0 {
			return fmt.Errorf("%w: %q is not a positive number", common.ErrorValidation, n)
		}
		limit = v
	}

	readings := a.history.Readings()
	if len(readings) == 0 {
		fmt.Fprintln(a.out, "Waiting for the first heart-rate reading...")
	} else {
		if len(readings) > limit {
			readings = readings[len(readings)-limit:]
		}
		for _, r := range readings {
			fmt.Fprintf(a.out, "%s  %3d bpm  %s\n", r.Time.Format("15:04:05"), r.Rate, vitals.Classify(r.Rate))
		}
	}

	act := vitals.TodayActivity()
	fmt.Fprintf(a.out, "Today: %d steps, %d kcal, %.1f mi, %d active min\n",
		act.Steps, act.Calories, act.DistanceMiles, act.ActiveMinutes)
	return nil
}

func (a *App) SOS(ctx context.Context) error {
	ok, err := Confirm(a.reader, "Send an emergency alert to your contacts with your location?", a.out)
	if err != nil || !ok {
		return err
	}

	alert := a.sos.Trigger(ctx)

	fmt.Fprintln(a.out, "SOS SENT")
	for _, c := range alert.Contacts {
		fmt.Fprintf(a.out, "  notified %s (%s)\n", c.Name, c.Phone)
	}
	if !alert.Location.IsZero() {
		fmt.Fprintf(a.out, "  location: %s\n", alert.Location)
	}
	v := alert.Vitals
	fmt.Fprintf(a.out, "  vitals: %d bpm, BP %s, SpO2 %d%%, %.1f°F\n", v.HeartRate, v.BloodPressure, v.OxygenPercent, v.TemperatureF)
	return nil
}

func (a *App) Monitor(ctx context.Context) error {
	if a.sos.ToggleMonitoring(ctx) {
		fmt.Fprintln(a.out, "Emergency monitoring started")
	} else {
		fmt.Fprintln(a.out, "Emergency monitoring stopped")
	}
	return nil
}
