// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/uchaguzi-block/models"
)

var (
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrUnsupportedDriver = errors.New("unsupported database type")
)

// Open connects to the configured database. dbType is "sqlite" or "postgres".
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case "sqlite":
		driver = "sqlite"
	case "postgres":
		driver = "postgres"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}

	// Every sqlite :memory: connection is a separate database
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	return conn, nil
}

// CandidateStore reads the seeded ballot.
type CandidateStore struct {
	db *sql.DB
}

func NewCandidateStore(db *sql.DB) *CandidateStore {
	return &CandidateStore{db: db}
}

// List returns every candidate in ballot order.
func (s *CandidateStore) List(ctx context.Context) ([]models.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, party, photo_url, color, votes
		FROM candidate
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Party, &c.PhotoURL, &c.Color, &c.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}

	return candidates, nil
}

// Get returns a single candidate by id.
func (s *CandidateStore) Get(ctx context.Context, id string) (models.Candidate, error) {
	var c models.Candidate
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, party, photo_url, color, votes
		FROM candidate
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Party, &c.PhotoURL, &c.Color, &c.Votes)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Candidate{}, ErrCandidateNotFound
	}
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to query candidate: %w", err)
	}

	return c, nil
}
