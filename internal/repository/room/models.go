package room

// Video is the persisted form of a media reference.
type Video struct {
	Id        string  `json:"id"`
	Title     string  `json:"title"`
	Thumbnail *string `json:"thumbnail,omitempty"`
	Artist    *string `json:"artist,omitempty"`
	Provider  string  `json:"provider"`
}

type QueueEntry struct {
	EntryId string `json:"entryId"`
	Video
	AddedBy string `json:"addedBy"`
}

// Room is one entry of the persisted snapshot. Times are unix milliseconds.
type Room struct {
	Id           string       `json:"id"`
	CurrentItem  *Video       `json:"currentItem"`
	IsPlaying    bool         `json:"isPlaying"`
	Position     float64      `json:"position"`
	LastUpdate   int64        `json:"lastUpdate"`
	LastActivity int64        `json:"lastActivity"`
	Queue        []QueueEntry `json:"queue"`
}

// Snapshot maps room id to room.
type Snapshot map[string]Room

func (s Snapshot) Clone() Snapshot {
	clone := make(Snapshot, len(s))
	for id, room := range s {
		clone[id] = room
	}

	return clone
}
