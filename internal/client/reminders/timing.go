package reminders

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// clock layouts accepted in a medicine timing string
var timeLayouts = []string{"3:04 PM", "3:04PM", "3 PM", "3PM", "15:04"}

// ParseTiming turns a free-text timing such as "8:00 AM, 8:00 PM" into daily
// cron specs. Parts that are not a time of day are returned as errors; the
// rest still parse.
func ParseTiming(timing string) (specs []string, errs []error) {
	for _, part := range strings.Split(timing, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		t, err := parseClock(part)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		spec := fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour())
		if _, err := cron.ParseStandard(spec); err != nil {
			errs = append(errs, fmt.Errorf("invalid schedule %q: %w", spec, err))
			continue
		}
		specs = append(specs, spec)
	}
	return specs, errs
}

func parseClock(s string) (time.Time, error) {
	norm := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, norm); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s)
}
