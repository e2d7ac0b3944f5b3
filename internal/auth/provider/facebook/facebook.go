package facebook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/logger"

	"golang.org/x/oauth2"
)

const providerName = "facebook"

// profileFields are the Graph API fields the resolver needs to build an
// internal user record.
const profileFields = "id,name,email"

// Client fetches profiles from the Facebook Graph API. One outbound GET
// per call; no caching at this layer.
type Client struct {
	graphURL string
	base     *http.Client
}

// New creates a Graph API client. graphURL is the API base, normally
// "https://graph.facebook.com"; tests point it at a local server.
func New(graphURL string) (*Client, error) {
	if graphURL == "" {
		return nil, errors.New("facebook graph url missing")
	}

	return &Client{
		graphURL: graphURL,
		base:     http.DefaultClient,
	}, nil
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return providerName
}

// FetchProfile performs a single GET against /me with the access token
// as a bearer credential. The response body is returned unparsed.
func (c *Client) FetchProfile(ctx context.Context, token string) ([]byte, error) {

	// StaticTokenSource puts the token on the wire as an
	// Authorization: Bearer header.
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.base)
	client := oauth2.NewClient(ctx, ts)

	url := fmt.Sprintf("%s/me?fields=%s", c.graphURL, profileFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("facebook: build profile request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("facebook: profile fetch failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("facebook: read profile response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("facebook rejected profile fetch", map[string]any{
			"status": resp.StatusCode,
		})
		return nil, fmt.Errorf("facebook: profile fetch returned status %d", resp.StatusCode)
	}

	return body, nil
}
