package storage

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS candidates (
    id                     UUID PRIMARY KEY,
    name                   TEXT NOT NULL DEFAULT '',
    phone                  TEXT NOT NULL DEFAULT '',
    position               TEXT NOT NULL DEFAULT '',
    email                  TEXT NOT NULL DEFAULT '',
    branch                 TEXT NOT NULL DEFAULT '',
    campaign               TEXT NOT NULL DEFAULT '',
    contact_time           TEXT NOT NULL DEFAULT '',
    city                   TEXT NOT NULL DEFAULT '',
    has_experience         TEXT NOT NULL DEFAULT '',
    job_title              TEXT NOT NULL DEFAULT '',
    experience_description TEXT NOT NULL DEFAULT '',
    currently_working      TEXT NOT NULL DEFAULT '',
    transportation         TEXT NOT NULL DEFAULT '',
    extensions             JSONB NOT NULL DEFAULT '{}'::jsonb,
    status                 TEXT NOT NULL DEFAULT 'not_handled',
    notes                  TEXT NOT NULL DEFAULT '',
    cv_url                 TEXT NOT NULL DEFAULT '',
    is_deleted_by_app      BOOLEAN NOT NULL DEFAULT FALSE,
    created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- lookup only; (name, phone, position) uniqueness is enforced by the importer
CREATE INDEX IF NOT EXISTS candidates_identity_idx ON candidates (name, phone, position);
CREATE INDEX IF NOT EXISTS candidates_position_idx ON candidates (position, created_at DESC);
`

// EnsureSchema creates the candidates table and its indexes when missing.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.connection.ExecContext(ctx, schemaSQL)
	return err
}
