package db

import (
	"context"
	"database/sql"
)

// The unique index on facebook_id is load-bearing: two concurrent
// first-time logins with the same token can both miss the lookup and
// race to insert. The constraint decides; the loser simply fails that
// request and the client retries.
const bootstrapMigration = `
CREATE TABLE IF NOT EXISTS users (
    id bigserial PRIMARY KEY,
    facebook_id text NOT NULL,
    email text NOT NULL,
    full_name text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW(),
    CONSTRAINT users_facebook_id_unique UNIQUE (facebook_id)
);
`

func RunBootstrapMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, bootstrapMigration)
	return err
}
