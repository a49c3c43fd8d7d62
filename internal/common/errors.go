// Package common defines shared sentinel errors and small helpers used across
// the ElderCare client layers. Callers should use errors.Is to match the
// sentinel values.
package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound = errors.New("not found")

	// Input errors (empty required fields, malformed dates, unknown fields).
	ErrorValidation = errors.New("validation error")
)
