// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The statements are valid for both sqlite and postgres.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Houses
CREATE TABLE IF NOT EXISTS house (
    id INTEGER PRIMARY KEY,
    address TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    image_url TEXT NOT NULL DEFAULT '',
    is_target BOOLEAN NOT NULL DEFAULT FALSE,
    votes INTEGER NOT NULL DEFAULT 0 CHECK (votes >= 0)
);

-- At most one target
CREATE UNIQUE INDEX IF NOT EXISTS idx_house_single_target ON house(is_target) WHERE is_target;

-- Guest messages
CREATE TABLE IF NOT EXISTS message (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    text TEXT NOT NULL,
    house_id INTEGER NOT NULL REFERENCES house(id) ON DELETE CASCADE,
    is_system BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_message_created_at ON message(created_at);

-- Vote audit log
CREATE TABLE IF NOT EXISTS vote_log (
    id TEXT PRIMARY KEY,
    requested_id INTEGER NOT NULL,
    recorded_id INTEGER NOT NULL REFERENCES house(id) ON DELETE CASCADE,
    mode TEXT NOT NULL,
    ip_hash TEXT,
    user_agent TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_vote_log_recorded_id ON vote_log(recorded_id);
`
