// Package common defines shared constants and sentinel errors used across
// the Delta Mobile client and the development backend. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Validation errors (local, pre-network).
	ErrValidation = errors.New("validation error")

	// Session errors.
	ErrNotLoggedIn = errors.New("not logged in")

	// Conversation participant resolution (current user matches neither
	// participant of a two-party conversation).
	ErrResolution = errors.New("participant resolution error")

	// Scan redemption while the scanner is in its cool-down window.
	ErrScanDebounced = errors.New("scan debounced")
)
