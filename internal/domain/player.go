package domain

import "time"

// Player is the playback clock of a room. Position is the offset in seconds
// at LastUpdate; while playing it advances with wall-clock time.
type Player struct {
	CurrentItem *MediaRef
	IsPlaying   bool
	Position    float64
	LastUpdate  time.Time
}

// PositionAt projects the effective position at now.
func (p Player) PositionAt(now time.Time) float64 {
	if !p.IsPlaying {
		return p.Position
	}

	elapsed := now.Sub(p.LastUpdate).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}

	return p.Position + elapsed
}

func (p Player) HasItem() bool {
	return p.CurrentItem != nil
}

func (p *Player) SetItem(item MediaRef, now time.Time) {
	p.CurrentItem = &item
	p.IsPlaying = true
	p.Position = 0
	p.LastUpdate = now
}

func (p *Player) SetPlaying(isPlaying bool, position float64, now time.Time) {
	p.IsPlaying = isPlaying
	p.Position = position
	p.LastUpdate = now
}

func (p *Player) Seek(position float64, now time.Time) {
	p.Position = position
	p.LastUpdate = now
}
