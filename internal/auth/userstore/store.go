package userstore

import (
	"context"

	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/auth"
)

// Store persists internal user records keyed by their Facebook ID.
// It is the ONLY place where durable identity state lives.
type Store interface {
	// GetOrCreate returns the record whose FacebookID matches the
	// candidate, inserting the candidate first when no record exists.
	// An existing record is returned verbatim; the candidate's freshly
	// fetched email and name are NOT written over stored values.
	GetOrCreate(ctx context.Context, candidate *auth.User) (*auth.User, error)
}
