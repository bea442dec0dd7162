package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	thumb := "https://i.ytimg.com/vi/abc/hqdefault.jpg"
	in := Room{
		Id:          "abcd1234",
		CurrentItem: &Video{Id: "abc", Title: "t", Thumbnail: &thumb, Provider: "youtube"},
		IsPlaying:   true,
		Position:    12.5,
		LastUpdate:  1714564800000,
		Queue: []QueueEntry{
			{EntryId: "e1", Video: Video{Id: "q1", Title: "q", Provider: "youtube"}, AddedBy: "Alice"},
		},
	}

	data, err := Encode(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"currentItem"`)
	assert.Contains(t, string(data), `"entryId":"e1"`)

	out, err := Decode("abcd1234", data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeRejectsMismatchedKey(t *testing.T) {
	data, err := Encode(Room{Id: "abcd1234"})
	require.NoError(t, err)

	_, err = Decode("zzzz9999", data)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	_, err = Decode("abcd1234", []byte("{"))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	_, err = Encode(Room{})
	assert.ErrorIs(t, err, ErrEmptyRoomId)
}
