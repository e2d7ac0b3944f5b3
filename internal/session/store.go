package session

import (
	"context"
	"time"
)

// Session holds the state persisted between requests. It stores the
// provider access token so follow-up requests can authenticate without
// resending it in the body; no resolved identity is stored here.
type Session struct {
	SessionID string    // unique session identifier
	Token     string    // provider access token asserted at login
	CreatedAt time.Time // when the session was issued
	ExpiresAt time.Time // absolute expiry time
}

// Store defines how sessions are stored and retrieved.
// Implementations (e.g., Redis) must remain stateless and opaque.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Update(ctx context.Context, s Session) error
	Delete(ctx context.Context, sessionID string) error
}
