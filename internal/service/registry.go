package service

import (
	"errors"
	"sort"
	"sync"

	"github.com/sharetube/watchparty/internal/repository/room"
	"golang.org/x/exp/maps"
)

var errRoomExists = errors.New("room already exists")

// Registry owns the live room actors, the connection to room bindings and the
// latest snapshot of every room. It is created at startup, optionally seeded
// by Restore, and torn down by Shutdown. Only room actors change room entries.
type Registry struct {
	rooms     map[string]*roomActor
	snapshots room.Snapshot
	conns     map[string]string
	closed    bool
	mu        sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		rooms:     make(map[string]*roomActor),
		snapshots: make(room.Snapshot),
		conns:     make(map[string]string),
	}
}

func (r *Registry) add(a *roomActor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrServiceStopped
	}

	if _, ok := r.rooms[a.room.Id]; ok {
		return errRoomExists
	}

	r.rooms[a.room.Id] = a
	return nil
}

func (r *Registry) get(roomId string) (*roomActor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.rooms[roomId]
	return a, ok
}

func (r *Registry) list() []*roomActor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Values(r.rooms)
}

// remove evicts a room together with its snapshot and connection bindings.
func (r *Registry) remove(roomId string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rooms, roomId)
	delete(r.snapshots, roomId)
	for connId, boundRoomId := range r.conns {
		if boundRoomId == roomId {
			delete(r.conns, connId)
		}
	}
}

// close refuses new rooms and returns the actors that were live.
func (r *Registry) close() []*roomActor {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	return maps.Values(r.rooms)
}

func (r *Registry) bindConn(connId, roomId string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns[connId] = roomId
}

func (r *Registry) unbindConn(connId, roomId string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.conns[connId] == roomId {
		delete(r.conns, connId)
	}
}

func (r *Registry) roomOf(connId string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roomId, ok := r.conns[connId]
	return roomId, ok
}

func (r *Registry) putSnapshot(rm room.Room) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[rm.Id]; !ok {
		return
	}

	r.snapshots[rm.Id] = rm
}

func (r *Registry) snapshot() room.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshots.Clone()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms)
}

func (r *Registry) RoomIds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := maps.Keys(r.rooms)
	sort.Strings(ids)
	return ids
}
