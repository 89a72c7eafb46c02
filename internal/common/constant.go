// Package common contains shared constants and sentinel errors used across
// Delta Mobile components.
package common

// Persisted session store keys. These are the same keys the mobile builds
// write, so a database produced by one client revision stays readable by
// the next.
const (
	KeyUserID     = "user_id"
	KeyUsername   = "username"
	KeyProfilePic = "profile_pic"
	KeyUserTheme  = "user_theme"
)

// DefaultTheme is assumed when the store carries no theme preference.
const DefaultTheme = "dark"
