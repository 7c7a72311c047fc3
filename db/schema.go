// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/uchaguzi-block/models"
)

// SampleCandidates is the compiled-in ballot. Vote counts are fixed sample data.
var SampleCandidates = []models.Candidate{
	{
		ID:       "c1",
		Name:     "Amani Kenya",
		Party:    "Unity Alliance",
		PhotoURL: "https://picsum.photos/200/200?random=1",
		Color:    "#ef4444",
		Votes:    4520123,
	},
	{
		ID:       "c2",
		Name:     "Baraka Msingi",
		Party:    "Progressive Party",
		PhotoURL: "https://picsum.photos/200/200?random=2",
		Color:    "#22c55e",
		Votes:    4100567,
	},
	{
		ID:       "c3",
		Name:     "David Omondi",
		Party:    "Tech Forward",
		PhotoURL: "https://picsum.photos/200/200?random=3",
		Color:    "#3b82f6",
		Votes:    1200890,
	},
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SeedCandidates inserts the sample ballot. Existing rows are left untouched,
// so restarting against a persistent database never rewrites counts.
func SeedCandidates(ctx context.Context, db *sql.DB, candidates []models.Candidate) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for i, c := range candidates {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO candidate (id, name, party, photo_url, color, votes, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO NOTHING
		`, c.ID, c.Name, c.Party, c.PhotoURL, c.Color, c.Votes, i)
		if err != nil {
			return fmt.Errorf("failed to seed candidate %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

const schema = `
-- Candidates (read-only after seeding)
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    party TEXT NOT NULL,
    photo_url TEXT NOT NULL,
    color TEXT NOT NULL,
    votes BIGINT NOT NULL CHECK (votes >= 0),
    position INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_candidate_position ON candidate(position);
`
