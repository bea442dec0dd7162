package domain

import "time"

type Inactivity int

const (
	InactivityNone Inactivity = iota
	InactivityWarn
	InactivityExpired
)

// Room is the full in-memory state of one watch session. It is not safe for
// concurrent use; a single owner goroutine applies every mutation.
type Room struct {
	Id            string
	Members       *Members
	Playlist      *Playlist
	Player        Player
	LastActivity  time.Time
	WarningIssued bool
}

func NewRoom(id string, playlistLimit int, now time.Time) *Room {
	return &Room{
		Id:           id,
		Members:      NewMembers(),
		Playlist:     NewPlaylist(playlistLimit),
		Player:       Player{LastUpdate: now},
		LastActivity: now,
	}
}

// RestoreRoom rebuilds a room from its persisted parts. Members and host are
// never persisted, so a restored room starts empty.
func RestoreRoom(id string, player Player, queue []QueueEntry, playlistLimit int, lastActivity time.Time) *Room {
	return &Room{
		Id:           id,
		Members:      NewMembers(),
		Playlist:     RestorePlaylist(queue, playlistLimit),
		Player:       player,
		LastActivity: lastActivity,
	}
}

// Touch records activity and re-arms the inactivity warning.
func (r *Room) Touch(now time.Time) {
	r.LastActivity = now
	r.WarningIssued = false
}

// Advance moves the front of the queue into the player.
func (r *Room) Advance(now time.Time) (QueueEntry, bool) {
	entry, ok := r.Playlist.PopFront()
	if !ok {
		return QueueEntry{}, false
	}

	r.Player.SetItem(entry.MediaRef, now)
	return entry, true
}

func (r Room) IdleFor(now time.Time) time.Duration {
	return now.Sub(r.LastActivity)
}

// Inactivity classifies the room for the reaper. A warning is due once idle
// time enters the band [timeout-warnBefore, timeout) and none was issued yet.
func (r Room) Inactivity(now time.Time, timeout, warnBefore time.Duration) Inactivity {
	idle := r.IdleFor(now)
	switch {
	case idle >= timeout:
		return InactivityExpired
	case idle >= timeout-warnBefore && !r.WarningIssued:
		return InactivityWarn
	default:
		return InactivityNone
	}
}
