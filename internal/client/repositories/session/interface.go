// Package session implements the persisted session store: a small key/value
// table holding the identity fields (user_id, username, profile_pic) and the
// user_theme preference. The session controller is its only writer; every
// other component reads through it.
package session

import "context"

// Repository is the key/value contract of the persisted session store.
//
// Get distinguishes "absent" from "present but empty": profile_pic is
// legitimately stored as an empty string when the account has no avatar.
type Repository interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set inserts or overwrites a key.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// Clear removes every key.
	Clear(ctx context.Context) error

	// List returns all stored pairs.
	List(ctx context.Context) (map[string]string, error)
}
