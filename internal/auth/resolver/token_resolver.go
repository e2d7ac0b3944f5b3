package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/auth"
	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/auth/cache"
	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/auth/provider"
	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/auth/userstore"
	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/logger"
)

var errIncompleteProfile = errors.New("resolver: provider profile missing required fields")

// profilePayload is the subset of the provider profile the resolver
// requires. All three fields must be present for a resolution to
// succeed.
type profilePayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TokenResolver is the canonical Resolver. It memoizes fully successful
// resolutions in the cache; transient failures are never cached, so a
// failed attempt re-verifies on the next call.
type TokenResolver struct {
	provider provider.ProfileFetcher
	users    userstore.Store
	cache    cache.Cache
}

func NewTokenResolver(
	p provider.ProfileFetcher,
	users userstore.Store,
	c cache.Cache,
) *TokenResolver {
	return &TokenResolver{
		provider: p,
		users:    users,
		cache:    c,
	}
}

func (r *TokenResolver) Resolve(
	ctx context.Context,
	token string,
) (*auth.User, error) {

	if token == "" {
		return nil, errors.New("resolver: empty token")
	}

	// 1. Memoized verification: no provider or store call.
	if user, ok := r.cache.Get(token); ok {
		return user, nil
	}

	// 2. Verify with the provider.
	raw, err := r.provider.FetchProfile(ctx, token)
	if err != nil {
		logger.Error("profile fetch failed", map[string]any{
			"provider": r.provider.Name(),
			"error":    err.Error(),
		})
		return nil, err
	}

	// 3. Validate the payload before touching the store.
	var profile profilePayload
	if err := json.Unmarshal(raw, &profile); err != nil {
		logger.Error("profile payload unparsable", map[string]any{
			"provider": r.provider.Name(),
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("resolver: parse profile: %w", err)
	}

	if profile.ID == "" || profile.Name == "" || profile.Email == "" {
		logger.Warn("profile payload incomplete", map[string]any{
			"provider":      r.provider.Name(),
			"id_present":    profile.ID != "",
			"name_present":  profile.Name != "",
			"email_present": profile.Email != "",
		})
		return nil, errIncompleteProfile
	}

	// 4. Translate to the internal shape; ID stays unset until the
	//    store assigns it.
	candidate := &auth.User{
		FacebookID: profile.ID,
		FullName:   profile.Name,
		Email:      profile.Email,
	}

	// 5. Lookup-or-create the durable record.
	user, err := r.users.GetOrCreate(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("resolver: persist user: %w", err)
	}

	// 6. Memoize only a fully persisted record.
	if !user.Persisted() {
		return nil, errors.New("resolver: store returned unpersisted record")
	}

	r.cache.Set(token, user)

	return user, nil
}

// Evict removes the memoized record for the token. The next Resolve
// with the same token performs a fresh provider call.
func (r *TokenResolver) Evict(token string) {
	if token == "" {
		return
	}
	r.cache.Delete(token)
}
