// Package cli provides the interactive ElderCare command-line client.
//
// It wires configuration, the storage adapter, the feature services and an
// interactive REPL. Typical flow: pick the start screen from stored state,
// start the background vitals and reminder jobs, and execute user commands.
//
// Key features:
//   - Welcome / Login / Demo / Logout
//   - Medicines with daily reminders
//   - Appointment calendar
//   - Profile and saved location
//   - Nearby hospitals, live heart rate, SOS
//   - Backup and restore of all stored data
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
