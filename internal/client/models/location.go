package models

import "strings"

type Location struct {
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}

func (l Location) IsZero() bool {
	return l == Location{}
}

func (l Location) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Address, l.City, l.ZipCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
