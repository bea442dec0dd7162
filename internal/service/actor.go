package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sharetube/watchparty/internal/domain"
)

type envelope struct {
	ctx   context.Context
	msg   any
	reply chan error
}

// roomActor owns one room. Every mutation of the room, including the
// broadcasts it causes, runs on the actor goroutine one message at a time.
type roomActor struct {
	room     *domain.Room
	s        *service
	inbox    chan envelope
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	closed   bool
}

type inspectMsg struct {
	fn func(*domain.Room)
}

func (s *service) startRoom(rm *domain.Room) (*roomActor, error) {
	a := &roomActor{
		room:  rm,
		s:     s,
		inbox: make(chan envelope),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}

	if err := s.registry.add(a); err != nil {
		return nil, err
	}
	s.registry.putSnapshot(toRepoRoom(rm))

	go a.run()
	return a, nil
}

func (a *roomActor) run() {
	defer close(a.done)

	for {
		select {
		case env := <-a.inbox:
			env.reply <- a.handle(env.ctx, env.msg)
			if a.closed {
				return
			}
		case <-a.quit:
			return
		}
	}
}

func (a *roomActor) submit(ctx context.Context, msg any) error {
	env := envelope{ctx: ctx, msg: msg, reply: make(chan error, 1)}

	select {
	case a.inbox <- env:
		return <-env.reply
	case <-a.done:
		return ErrSessionNotFound
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *roomActor) stop() {
	a.stopOnce.Do(func() {
		close(a.quit)
	})
	<-a.done
}

func (a *roomActor) handle(ctx context.Context, msg any) error {
	now := a.s.now()

	switch msg := msg.(type) {
	case joinMsg:
		return a.join(ctx, msg, now)
	case leaveMsg:
		return a.leave(ctx, msg, now)
	case resendStateMsg:
		a.sendTo(msg.connId, a.sessionState(msg.connId, now))
		return nil
	case setItemMsg:
		return a.setItem(ctx, msg, now)
	case togglePlayMsg:
		return a.togglePlay(ctx, msg, now)
	case seekMsg:
		return a.seek(ctx, msg, now)
	case advanceMsg:
		return a.advance(ctx, msg, now)
	case syncMsg:
		return a.sync(msg, now)
	case enqueueMsg:
		return a.enqueue(ctx, msg, now)
	case reorderMsg:
		return a.reorder(ctx, msg, now)
	case removeFromQueueMsg:
		return a.removeFromQueue(ctx, msg, now)
	case chatMsg:
		return a.chat(ctx, msg, now)
	case sweepMsg:
		return a.sweep(ctx, msg)
	case inspectMsg:
		msg.fn(a.room)
		return nil
	default:
		return fmt.Errorf("unexpected room message %T", msg)
	}
}

func (a *roomActor) isMember(connId string) bool {
	return a.room.Members.Contains(connId)
}

// commit marks the room active and schedules a snapshot write.
func (a *roomActor) commit(now time.Time) {
	a.room.Touch(now)
	a.s.registry.putSnapshot(toRepoRoom(a.room))
	a.s.persister.Notify()
}

func (a *roomActor) sendTo(connId string, out Output) {
	if err := a.s.connRepo.Send(connId, out); err != nil {
		a.s.logger.Debug("failed to send output",
			"conn_id", connId,
			"room_id", a.room.Id,
			"type", out.Type,
			"error", err,
		)
	}
}

func (a *roomActor) broadcast(out Output) {
	for _, connId := range a.room.Members.Ids() {
		a.sendTo(connId, out)
	}
}

func (a *roomActor) broadcastExcept(senderId string, out Output) {
	for _, connId := range a.room.Members.Ids() {
		if connId != senderId {
			a.sendTo(connId, out)
		}
	}
}

func (a *roomActor) sessionState(connId string, now time.Time) Output {
	rm := a.room
	return Output{
		Type: TypeSessionState,
		Payload: SessionState{
			Id:           rm.Id,
			Participants: rm.Members.AsList(),
			CurrentItem:  rm.Player.CurrentItem,
			IsPlaying:    rm.Player.IsPlaying,
			Position:     rm.Player.PositionAt(now),
			Queue:        rm.Playlist.AsList(),
			IsHost:       rm.Members.IsHost(connId),
		},
	}
}

func (a *roomActor) queueChanged() Output {
	return Output{Type: TypeQueueChanged, Payload: QueueChanged{Queue: a.room.Playlist.AsList()}}
}
