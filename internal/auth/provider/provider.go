package provider

import "context"

// ProfileFetcher defines the contract for the external identity
// provider. Implementations fetch the raw profile document for an
// access token and must not validate, parse, or cache it; that is the
// resolver's job.
type ProfileFetcher interface {
	// Name returns the provider identifier (e.g. "facebook").
	Name() string

	// FetchProfile exchanges the access token for the provider's raw
	// JSON profile document. Transport failures and non-2xx responses
	// are returned as errors.
	FetchProfile(ctx context.Context, token string) ([]byte, error)
}
