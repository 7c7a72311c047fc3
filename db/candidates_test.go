package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/uchaguzi-block/models"
)

func TestSeedAndList(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	conn, err := Open("sqlite", ":memory:")
	req.NoError(err)
	defer conn.Close()

	req.NoError(CreateSchema(conn))
	req.NoError(SeedCandidates(ctx, conn, SampleCandidates))

	store := NewCandidateStore(conn)
	candidates, err := store.List(ctx)
	req.NoError(err)
	req.Equal(SampleCandidates, candidates)
}

func TestSeedIsIdempotent(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	conn, err := Open("sqlite", ":memory:")
	req.NoError(err)
	defer conn.Close()

	req.NoError(CreateSchema(conn))
	req.NoError(CreateSchema(conn))
	req.NoError(SeedCandidates(ctx, conn, SampleCandidates))

	// A second seed with different counts must not overwrite the first
	changed := append([]models.Candidate(nil), SampleCandidates...)
	changed[0].Votes = 1
	req.NoError(SeedCandidates(ctx, conn, changed))

	c, err := NewCandidateStore(conn).Get(ctx, "c1")
	req.NoError(err)
	req.Equal(int64(4520123), c.Votes)

	var count int
	req.NoError(conn.QueryRow(`SELECT COUNT(*) FROM candidate`).Scan(&count))
	req.Equal(3, count)
}

func TestGetUnknownCandidate(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	conn, err := Open("sqlite", ":memory:")
	req.NoError(err)
	defer conn.Close()
	req.NoError(CreateSchema(conn))

	_, err = NewCandidateStore(conn).Get(ctx, "nope")
	req.ErrorIs(err, ErrCandidateNotFound)
}

func TestOpenUnsupportedType(t *testing.T) {
	_, err := Open("mysql", "whatever")
	require.ErrorIs(t, err, ErrUnsupportedDriver)
}
