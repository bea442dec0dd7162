package service

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/sharetube/watchparty/internal/domain"
)

type enqueueMsg struct {
	connId string
	item   MediaRefParams
}

type reorderMsg struct {
	connId string
	from   int
	to     int
}

type removeFromQueueMsg struct {
	connId  string
	entryId string
}

type EnqueueParams struct {
	ConnId string
	Item   MediaRefParams
}

func (s *service) Enqueue(ctx context.Context, params *EnqueueParams) error {
	if err := params.Item.normalize(); err != nil {
		return validationError(err)
	}

	return s.submitFromConn(ctx, params.ConnId, enqueueMsg{connId: params.ConnId, item: params.Item})
}

type ReorderQueueParams struct {
	ConnId    string `json:"connId"`
	FromIndex *int   `json:"fromIndex"`
	ToIndex   *int   `json:"toIndex"`
}

func (s *service) ReorderQueue(ctx context.Context, params *ReorderQueueParams) error {
	if err := validation.ValidateStructWithContext(ctx, params,
		validation.Field(&params.FromIndex, QueueIndexRule...),
		validation.Field(&params.ToIndex, QueueIndexRule...),
	); err != nil {
		return validationError(err)
	}

	return s.submitFromConn(ctx, params.ConnId, reorderMsg{
		connId: params.ConnId,
		from:   *params.FromIndex,
		to:     *params.ToIndex,
	})
}

type RemoveFromQueueParams struct {
	ConnId  string `json:"connId"`
	EntryId string `json:"entryId"`
}

func (s *service) RemoveFromQueue(ctx context.Context, params *RemoveFromQueueParams) error {
	params.EntryId = strings.TrimSpace(params.EntryId)
	if err := validation.ValidateStructWithContext(ctx, params,
		validation.Field(&params.EntryId, EntryIdRule...),
	); err != nil {
		return validationError(err)
	}

	return s.submitFromConn(ctx, params.ConnId, removeFromQueueMsg{connId: params.ConnId, entryId: params.EntryId})
}

func (a *roomActor) enqueue(ctx context.Context, msg enqueueMsg, now time.Time) error {
	member, _, err := a.room.Members.GetById(msg.connId)
	if err != nil {
		return nil
	}

	entry := domain.QueueEntry{
		EntryId:  uuid.NewString(),
		MediaRef: msg.item.toDomain(),
		AddedBy:  member.Name,
	}
	if err := a.room.Playlist.Add(entry); err != nil {
		return err
	}

	a.broadcast(a.queueChanged())
	a.commit(now)

	a.s.logger.DebugContext(ctx, "item enqueued", "session_id", a.room.Id, "entry_id", entry.EntryId)
	return nil
}

func (a *roomActor) reorder(_ context.Context, msg reorderMsg, now time.Time) error {
	if !a.isMember(msg.connId) {
		return nil
	}

	if err := a.room.Playlist.Move(msg.from, msg.to); err != nil {
		return err
	}

	a.broadcast(a.queueChanged())
	a.commit(now)
	return nil
}

func (a *roomActor) removeFromQueue(_ context.Context, msg removeFromQueueMsg, now time.Time) error {
	if !a.isMember(msg.connId) {
		return nil
	}

	if _, err := a.room.Playlist.RemoveById(msg.entryId); err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return nil
		}

		return err
	}

	a.broadcast(a.queueChanged())
	a.commit(now)
	return nil
}
