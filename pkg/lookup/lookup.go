// Package lookup defines the identity-lookup capability the owners check
// consumes, along with the providers that implement it against GitHub and
// GitLab and the adapters that bridge synchronous and deferred callers.
package lookup

import "context"

// TeamStatus is the outcome of a team existence lookup.
type TeamStatus string

const (
	TeamStatusExists       TeamStatus = "exists"
	TeamStatusNotFound     TeamStatus = "not_found"
	TeamStatusUnauthorized TeamStatus = "unauthorized"
)

// Lookup answers whether owner identities exist. Implementations may resolve
// synchronously or suspend on network calls; callers treat both the same way
// through ctx. A returned error means the lookup could not be completed, not
// that the identity is absent.
type Lookup interface {
	UserExists(ctx context.Context, name string) (bool, error)
	TeamExists(ctx context.Context, org, team string) (TeamStatus, error)
}
