package resolver

import (
	"context"

	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/auth"
)

// Resolver turns an opaque access token into an internal user record.
// It is the ONLY place where token-to-user mapping logic lives.
type Resolver interface {
	// Resolve verifies the token and returns the canonical record.
	// Every failure (transport, malformed profile, persistence) is
	// logged at the point of failure and returned as an error; callers
	// treat any error as "not authenticated".
	Resolve(ctx context.Context, token string) (*auth.User, error)

	// Evict drops the memoized record for the token, forcing the next
	// Resolve to re-verify with the provider.
	Evict(token string)
}
