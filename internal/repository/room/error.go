package room

import "errors"

var (
	ErrInvalidSnapshot = errors.New("invalid snapshot entry")
	ErrEmptyRoomId     = errors.New("room id is empty")
)
