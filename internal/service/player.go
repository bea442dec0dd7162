package service

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type setItemMsg struct {
	connId string
	item   MediaRefParams
}

type togglePlayMsg struct {
	connId    string
	isPlaying bool
	position  float64
}

type seekMsg struct {
	connId   string
	position float64
}

type advanceMsg struct {
	connId string
}

type syncMsg struct {
	connId string
}

type SetItemParams struct {
	ConnId string
	Item   MediaRefParams
}

func (s *service) SetItem(ctx context.Context, params *SetItemParams) error {
	if err := params.Item.normalize(); err != nil {
		return validationError(err)
	}

	return s.submitFromConn(ctx, params.ConnId, setItemMsg{connId: params.ConnId, item: params.Item})
}

type TogglePlayParams struct {
	ConnId    string   `json:"connId"`
	IsPlaying *bool    `json:"isPlaying"`
	Position  *float64 `json:"position"`
}

func (s *service) TogglePlay(ctx context.Context, params *TogglePlayParams) error {
	if err := validation.ValidateStructWithContext(ctx, params,
		validation.Field(&params.IsPlaying, IsPlayingRule...),
		validation.Field(&params.Position, PositionRule...),
	); err != nil {
		return validationError(err)
	}

	return s.submitFromConn(ctx, params.ConnId, togglePlayMsg{
		connId:    params.ConnId,
		isPlaying: *params.IsPlaying,
		position:  *params.Position,
	})
}

type SeekParams struct {
	ConnId   string   `json:"connId"`
	Position *float64 `json:"position"`
}

func (s *service) Seek(ctx context.Context, params *SeekParams) error {
	if err := validation.ValidateStructWithContext(ctx, params,
		validation.Field(&params.Position, PositionRule...),
	); err != nil {
		return validationError(err)
	}

	return s.submitFromConn(ctx, params.ConnId, seekMsg{connId: params.ConnId, position: *params.Position})
}

func (s *service) Advance(ctx context.Context, connId string) error {
	return s.submitFromConn(ctx, connId, advanceMsg{connId: connId})
}

func (s *service) RequestSync(ctx context.Context, connId string) error {
	return s.submitFromConn(ctx, connId, syncMsg{connId: connId})
}

func (a *roomActor) setItem(ctx context.Context, msg setItemMsg, now time.Time) error {
	if !a.isMember(msg.connId) {
		return nil
	}

	item := msg.item.toDomain()
	a.room.Player.SetItem(item, now)

	a.broadcast(Output{
		Type:    TypeItemChanged,
		Payload: ItemChanged{MediaRef: item, IsPlaying: true, Position: 0},
	})
	a.commit(now)

	a.s.logger.InfoContext(ctx, "item changed", "session_id", a.room.Id, "item_id", item.Id)
	return nil
}

func (a *roomActor) togglePlay(_ context.Context, msg togglePlayMsg, now time.Time) error {
	if !a.isMember(msg.connId) {
		return nil
	}

	if !a.room.Player.HasItem() {
		return ErrNothingPlaying
	}

	a.room.Player.SetPlaying(msg.isPlaying, msg.position, now)

	a.broadcastExcept(msg.connId, Output{
		Type:    TypePlayStateChanged,
		Payload: PlayStateChanged{IsPlaying: msg.isPlaying, Position: msg.position},
	})
	a.commit(now)
	return nil
}

func (a *roomActor) seek(_ context.Context, msg seekMsg, now time.Time) error {
	if !a.isMember(msg.connId) {
		return nil
	}

	if !a.room.Player.HasItem() {
		return ErrNothingPlaying
	}

	a.room.Player.Seek(msg.position, now)

	a.broadcastExcept(msg.connId, Output{Type: TypeSeeked, Payload: Seeked{Position: msg.position}})
	a.commit(now)
	return nil
}

func (a *roomActor) advance(ctx context.Context, msg advanceMsg, now time.Time) error {
	if !a.isMember(msg.connId) {
		return nil
	}

	entry, ok := a.room.Advance(now)
	if !ok {
		return nil
	}

	a.broadcast(Output{
		Type:    TypeItemChanged,
		Payload: ItemChanged{MediaRef: entry.MediaRef, IsPlaying: true, Position: 0},
	})
	a.broadcast(a.queueChanged())
	a.commit(now)

	a.s.logger.InfoContext(ctx, "advanced to next item", "session_id", a.room.Id, "item_id", entry.Id)
	return nil
}

func (a *roomActor) sync(msg syncMsg, now time.Time) error {
	if !a.isMember(msg.connId) {
		return nil
	}

	a.sendTo(msg.connId, Output{
		Type: TypeSyncResponse,
		Payload: SyncResponse{
			Position:  a.room.Player.PositionAt(now),
			IsPlaying: a.room.Player.IsPlaying,
		},
	})
	return nil
}
