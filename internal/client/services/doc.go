// Package services holds the application logic behind each client screen:
// session, medicines, appointments, profile, location, hospitals and SOS.
//
// Every service keeps its state as one JSON document under a fixed key of the
// storage adapter. Reads used for display degrade to defaults when storage is
// unavailable or the stored text cannot be decoded (the problem is logged).
// Mutations load strictly, and any storage failure is returned to the caller
// so an unsaved change is never dropped silently.
package services
