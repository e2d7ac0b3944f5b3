package userstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/auth"
	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/db"
	"github.com/MetisoftSolutions/metisoft-facebook-auth/internal/logger"
)

// Postgres is the canonical Store backed by the users table.
type Postgres struct {
	db *db.DB
}

func NewPostgres(db *db.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) GetOrCreate(
	ctx context.Context,
	candidate *auth.User,
) (*auth.User, error) {

	if candidate == nil || candidate.FacebookID == "" {
		return nil, errors.New("userstore: candidate missing facebook id")
	}

	// 1. Lookup by the external key. At most one row; the schema
	//    enforces uniqueness on facebook_id.
	var existing auth.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, facebook_id, email, full_name
		FROM users
		WHERE facebook_id = $1
	`, candidate.FacebookID).Scan(
		&existing.ID,
		&existing.FacebookID,
		&existing.Email,
		&existing.FullName,
	)

	if err == nil {
		// Stored values win over the freshly fetched profile; no
		// update-on-login.
		return &existing, nil
	}

	if err != sql.ErrNoRows {
		logger.Error("user lookup failed", map[string]any{
			"error": err.Error(),
		})
		return nil, err
	}

	// 2. First login for this identity: insert and read back the
	//    generated id.
	created := auth.User{
		FacebookID: candidate.FacebookID,
		Email:      candidate.Email,
		FullName:   candidate.FullName,
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (facebook_id, email, full_name)
		VALUES ($1, $2, $3)
		RETURNING id
	`,
		created.FacebookID,
		created.Email,
		created.FullName,
	).Scan(&created.ID)

	if err != nil {
		logger.Error("user insert failed", map[string]any{
			"facebook_id": candidate.FacebookID,
			"error":       err.Error(),
		})
		return nil, err
	}

	return &created, nil
}
