// Package models defines the shapes the client persists through the storage
// adapter, and the keys they live under. Every shape is stored as JSON text;
// field names match what earlier app versions wrote.
package models

// Storage keys used by the application.
const (
	KeyHasLaunched  = "hasLaunched"
	KeyUserToken    = "userToken"
	KeyUserEmail    = "userEmail"
	KeyMedicines    = "medicines"
	KeyAppointments = "appointments"
	KeyUserLocation = "userLocation"
	KeyUserProfile  = "userProfile"
)

// AllKeys lists every key the application writes.
var AllKeys = []string{
	KeyHasLaunched,
	KeyUserToken,
	KeyUserEmail,
	KeyMedicines,
	KeyAppointments,
	KeyUserLocation,
	KeyUserProfile,
}
