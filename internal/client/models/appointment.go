package models

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date used as the appointments map key.
const DateLayout = "2006-01-02"

type Appointment struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Time  string `json:"time"`
	Notes string `json:"notes"`
}

func (a Appointment) String() string {
	if a.Notes == "" {
		return fmt.Sprintf("%d  %s  %s", a.ID, a.Time, a.Title)
	}
	return fmt.Sprintf("%d  %s  %s - %s", a.ID, a.Time, a.Title, a.Notes)
}

// Appointments maps a date (DateLayout) to that day's appointments in
// insertion order.
type Appointments map[string][]Appointment

// ParseDate validates an appointments map key.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
