package room

import (
	"encoding/json"
	"fmt"
)

// Encode serializes a single snapshot entry for key-value backends.
func Encode(room Room) ([]byte, error) {
	if room.Id == "" {
		return nil, ErrEmptyRoomId
	}

	data, err := json.Marshal(room)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal room %s: %w", room.Id, err)
	}

	return data, nil
}

// Decode parses one stored entry and checks it against its key.
func Decode(id string, data []byte) (Room, error) {
	var room Room
	if err := json.Unmarshal(data, &room); err != nil {
		return Room{}, fmt.Errorf("%w: %s: %w", ErrInvalidSnapshot, id, err)
	}

	if room.Id != id {
		return Room{}, fmt.Errorf("%w: key %s holds room %q", ErrInvalidSnapshot, id, room.Id)
	}

	return room, nil
}
