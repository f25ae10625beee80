package docgram

import "context"

// PostedStore persists the set of document identities already published.
// It is the single source of truth for "was this published": identities are
// never removed by normal operation, and Commit must be durable before the
// pipeline proceeds to the next candidate.
type PostedStore interface {
	// Count returns the number of posted identities. A missing or empty
	// store is a valid first-run state, not an error.
	Count(ctx context.Context) (int, error)

	// Contains reports whether the identity has already been published.
	Contains(ctx context.Context, identity string) (bool, error)

	// Commit durably records the identity. Committing an identity that is
	// already present is a no-op.
	Commit(ctx context.Context, identity string, locator string) error
}
