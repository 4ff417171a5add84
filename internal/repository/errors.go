// Package repository is the data access layer.  Each repository wraps an
// injected *sql.DB and runs one statement per call; nothing here opens a
// transaction or takes a lock.
//
// Lookups that find no row return one of the sentinel errors below so
// higher layers can tell "absent" apart from a store failure.
package repository

import "errors"

// ErrBookingNotFound is returned when no booking matches the lookup.
var ErrBookingNotFound = errors.New("booking not found")

// ErrRoomNotFound is returned when a room id does not resolve.
var ErrRoomNotFound = errors.New("room not found")

// ErrSessionNotFound is returned when no session carries the given token.
var ErrSessionNotFound = errors.New("session not found")
