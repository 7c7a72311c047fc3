// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db holds the sample data store: the candidate table and its seed.

# Opening a Connection

Open picks the driver from the configured database type:

	conn, err := db.Open("sqlite", ":memory:")
	conn, err := db.Open("postgres", "postgres://...")

SQLite connections are capped at one so an in-memory database is shared.

# Schema Creation

CreateSchema initializes the candidate table:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for tables and indexes.

# Seeding

SeedCandidates writes SampleCandidates once. Rows that already exist are
never updated, so vote counts stay fixed for the life of the database.

# Reading

CandidateStore is read-only:

	store := db.NewCandidateStore(conn)
	candidates, err := store.List(ctx)
	c, err := store.Get(ctx, "c1") // ErrCandidateNotFound if missing

# Tables

  - candidate: id, name, party, photo_url, color, votes, position

Receipts and chat transcripts are never written to the database.
*/
package db
