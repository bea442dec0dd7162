package domain

import (
	"errors"

	"golang.org/x/exp/slices"
)

var (
	ErrEntryNotFound        = errors.New("queue entry not found")
	ErrPlaylistLimitReached = errors.New("queue is full")
	ErrInvalidQueueIndex    = errors.New("invalid queue index")
)

// Playlist is the bounded, ordered queue of upcoming entries.
type Playlist struct {
	list  []QueueEntry
	limit int
}

func NewPlaylist(limit int) *Playlist {
	return &Playlist{
		list:  make([]QueueEntry, 0),
		limit: limit,
	}
}

// RestorePlaylist rebuilds a playlist from persisted entries, keeping at most
// limit of them.
func RestorePlaylist(entries []QueueEntry, limit int) *Playlist {
	if len(entries) > limit {
		entries = entries[:limit]
	}

	return &Playlist{
		list:  slices.Clone(entries),
		limit: limit,
	}
}

func (p Playlist) AsList() []QueueEntry {
	list := slices.Clone(p.list)
	if list == nil {
		return []QueueEntry{}
	}

	return list
}

func (p Playlist) Length() int {
	return len(p.list)
}

func (p Playlist) Limit() int {
	return p.limit
}

func (p *Playlist) Add(entry QueueEntry) error {
	if p.Length() >= p.limit {
		return ErrPlaylistLimitReached
	}

	p.list = append(p.list, entry)
	return nil
}

// Move removes the entry at from and inserts it at to.
func (p *Playlist) Move(from, to int) error {
	if !p.inRange(from) || !p.inRange(to) {
		return ErrInvalidQueueIndex
	}

	entry := p.list[from]
	p.list = slices.Delete(p.list, from, from+1)
	p.list = slices.Insert(p.list, to, entry)
	return nil
}

func (p *Playlist) RemoveById(entryId string) (QueueEntry, error) {
	index := slices.IndexFunc(p.list, func(entry QueueEntry) bool {
		return entry.EntryId == entryId
	})
	if index == -1 {
		return QueueEntry{}, ErrEntryNotFound
	}

	entry := p.list[index]
	p.list = slices.Delete(p.list, index, index+1)
	return entry, nil
}

func (p *Playlist) PopFront() (QueueEntry, bool) {
	if len(p.list) == 0 {
		return QueueEntry{}, false
	}

	entry := p.list[0]
	p.list = slices.Delete(p.list, 0, 1)
	return entry, true
}

func (p Playlist) inRange(index int) bool {
	return index >= 0 && index < len(p.list)
}
