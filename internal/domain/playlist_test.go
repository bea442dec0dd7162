package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id string) QueueEntry {
	return QueueEntry{
		EntryId:  id,
		MediaRef: MediaRef{Id: "v-" + id, Title: "title " + id, Provider: ProviderYouTube},
		AddedBy:  "Alice",
	}
}

func entryIds(entries []QueueEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.EntryId)
	}
	return ids
}

func TestPlaylistLimit(t *testing.T) {
	p := NewPlaylist(50)
	for i := 0; i < 50; i++ {
		require.NoError(t, p.Add(entry(fmt.Sprint(i))))
	}

	before := p.AsList()
	err := p.Add(entry("overflow"))
	assert.ErrorIs(t, err, ErrPlaylistLimitReached)
	assert.Equal(t, 50, p.Length())
	assert.Equal(t, before, p.AsList())
}

func TestPlaylistMove(t *testing.T) {
	p := NewPlaylist(50)
	for _, id := range []string{"A", "B", "C", "D"} {
		require.NoError(t, p.Add(entry(id)))
	}

	require.NoError(t, p.Move(0, 2))
	assert.Equal(t, []string{"B", "C", "A", "D"}, entryIds(p.AsList()))

	require.NoError(t, p.Move(3, 0))
	assert.Equal(t, []string{"D", "B", "C", "A"}, entryIds(p.AsList()))
}

func TestPlaylistMoveOutOfRange(t *testing.T) {
	p := NewPlaylist(50)
	for _, id := range []string{"A", "B", "C", "D"} {
		require.NoError(t, p.Add(entry(id)))
	}

	for _, idx := range [][2]int{{-1, 0}, {0, 4}, {4, 0}, {0, -2}} {
		assert.ErrorIs(t, p.Move(idx[0], idx[1]), ErrInvalidQueueIndex)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, entryIds(p.AsList()))
}

func TestPlaylistRemoveAndPop(t *testing.T) {
	p := NewPlaylist(50)
	for _, id := range []string{"A", "B", "C"} {
		require.NoError(t, p.Add(entry(id)))
	}

	removed, err := p.RemoveById("B")
	require.NoError(t, err)
	assert.Equal(t, "B", removed.EntryId)

	_, err = p.RemoveById("B")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	first, ok := p.PopFront()
	require.True(t, ok)
	assert.Equal(t, "A", first.EntryId)
	assert.Equal(t, []string{"C"}, entryIds(p.AsList()))

	_, _ = p.PopFront()
	_, ok = p.PopFront()
	assert.False(t, ok)
	assert.NotNil(t, p.AsList())
}

func TestRestorePlaylistTruncates(t *testing.T) {
	entries := []QueueEntry{entry("A"), entry("B"), entry("C")}
	p := RestorePlaylist(entries, 2)

	assert.Equal(t, []string{"A", "B"}, entryIds(p.AsList()))
	assert.ErrorIs(t, p.Add(entry("D")), ErrPlaylistLimitReached)
}
