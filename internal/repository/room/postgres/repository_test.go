package postgres

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/sharetube/watchparty/internal/repository/room"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN is not set")
	}

	ctx := context.Background()
	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	r, err := NewRepo(ctx, pool, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	snapshot := room.Snapshot{
		"abcd1234": {
			Id:           "abcd1234",
			CurrentItem:  &room.Video{Id: "dQw4w9WgXcQ", Title: "song", Provider: "youtube"},
			IsPlaying:    true,
			Position:     3.5,
			LastUpdate:   1714564800000,
			LastActivity: 1714564800000,
			Queue:        []room.QueueEntry{},
		},
	}
	require.NoError(t, r.SaveSnapshot(ctx, snapshot))

	got, err := r.GetSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)
}
