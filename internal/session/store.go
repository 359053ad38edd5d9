// Package session owns the client's authentication state: the current
// credential and the cached user record, persisted together across
// runs. It is the single source of truth for "who is logged in".
package session

import "context"

// Store persists the credential/user pair. The pair is the only shared
// mutable resource in the client, and its invariant is encoded in the
// method set: Save and Clear always act on both entries atomically, so
// no reader can ever observe one present without the other.
type Store interface {
	// Load returns the persisted credential and serialized user.
	// Absent entries come back empty, never as an error.
	Load(ctx context.Context) (credential string, user []byte, err error)

	// Save writes credential and user in one atomic step.
	Save(ctx context.Context, credential string, user []byte) error

	// SaveUser replaces only the user entry. The credential must not
	// be touched.
	SaveUser(ctx context.Context, user []byte) error

	// Clear removes both entries in one atomic step. Clearing an empty
	// store is a no-op.
	Clear(ctx context.Context) error
}
