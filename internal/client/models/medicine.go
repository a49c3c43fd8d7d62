package models

import "fmt"

// Medicine is one entry of the medicine list.
type Medicine struct {
	// ID is the creation time in Unix milliseconds.
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Dosage string `json:"dosage"`
	// Timing is free text such as "8:00 AM, 8:00 PM".
	Timing string `json:"timing"`
	Taken  bool   `json:"taken"`
}

func (m Medicine) String() string {
	mark := "[ ]"
	if m.Taken {
		mark = "[x]"
	}
	return fmt.Sprintf("%s %d  %s %s  (%s)", mark, m.ID, m.Name, m.Dosage, m.Timing)
}

// DefaultMedicines seeds a fresh installation.
func DefaultMedicines() []Medicine {
	return []Medicine{
		{ID: 1, Name: "Metformin", Dosage: "500mg", Timing: "8:00 AM, 8:00 PM", Taken: false},
	}
}
