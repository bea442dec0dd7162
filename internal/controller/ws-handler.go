package controller

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sharetube/watchparty/internal/service"
)

type EmptyInput struct{}

func (c controller) handleCreateSession(ctx context.Context, _ *websocket.Conn, _ EmptyInput) error {
	resp, err := c.sessionService.CreateSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	if err := c.connRepo.Send(c.getConnIdFromCtx(ctx), service.Output{
		Type:    service.TypeSessionCreated,
		Payload: service.SessionCreated{SessionId: resp.SessionId},
	}); err != nil {
		return fmt.Errorf("failed to send session created: %w", err)
	}

	return nil
}

type JoinSessionInput struct {
	SessionId string `json:"sessionId"`
	Name      string `json:"name"`
}

func (c controller) handleJoinSession(ctx context.Context, _ *websocket.Conn, input JoinSessionInput) error {
	if err := c.sessionService.JoinSession(ctx, &service.JoinSessionParams{
		ConnId:    c.getConnIdFromCtx(ctx),
		SessionId: input.SessionId,
		Name:      input.Name,
	}); err != nil {
		return fmt.Errorf("failed to join session: %w", err)
	}

	return nil
}

func (c controller) handleSetItem(ctx context.Context, _ *websocket.Conn, input service.MediaRefParams) error {
	if err := c.sessionService.SetItem(ctx, &service.SetItemParams{
		ConnId: c.getConnIdFromCtx(ctx),
		Item:   input,
	}); err != nil {
		return fmt.Errorf("failed to set item: %w", err)
	}

	return nil
}

type TogglePlayInput struct {
	IsPlaying *bool    `json:"isPlaying"`
	Position  *float64 `json:"position"`
}

func (c controller) handleTogglePlay(ctx context.Context, _ *websocket.Conn, input TogglePlayInput) error {
	if err := c.sessionService.TogglePlay(ctx, &service.TogglePlayParams{
		ConnId:    c.getConnIdFromCtx(ctx),
		IsPlaying: input.IsPlaying,
		Position:  input.Position,
	}); err != nil {
		return fmt.Errorf("failed to toggle play: %w", err)
	}

	return nil
}

type SeekInput struct {
	Position *float64 `json:"position"`
}

func (c controller) handleSeek(ctx context.Context, _ *websocket.Conn, input SeekInput) error {
	if err := c.sessionService.Seek(ctx, &service.SeekParams{
		ConnId:   c.getConnIdFromCtx(ctx),
		Position: input.Position,
	}); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}

	return nil
}

func (c controller) handleEnqueue(ctx context.Context, _ *websocket.Conn, input service.MediaRefParams) error {
	if err := c.sessionService.Enqueue(ctx, &service.EnqueueParams{
		ConnId: c.getConnIdFromCtx(ctx),
		Item:   input,
	}); err != nil {
		return fmt.Errorf("failed to enqueue: %w", err)
	}

	return nil
}

type ReorderInput struct {
	FromIndex *int `json:"fromIndex"`
	ToIndex   *int `json:"toIndex"`
}

func (c controller) handleReorder(ctx context.Context, _ *websocket.Conn, input ReorderInput) error {
	if err := c.sessionService.ReorderQueue(ctx, &service.ReorderQueueParams{
		ConnId:    c.getConnIdFromCtx(ctx),
		FromIndex: input.FromIndex,
		ToIndex:   input.ToIndex,
	}); err != nil {
		return fmt.Errorf("failed to reorder queue: %w", err)
	}

	return nil
}

type RemoveFromQueueInput struct {
	EntryId string `json:"entryId"`
}

func (c controller) handleRemoveFromQueue(ctx context.Context, _ *websocket.Conn, input RemoveFromQueueInput) error {
	if err := c.sessionService.RemoveFromQueue(ctx, &service.RemoveFromQueueParams{
		ConnId:  c.getConnIdFromCtx(ctx),
		EntryId: input.EntryId,
	}); err != nil {
		return fmt.Errorf("failed to remove from queue: %w", err)
	}

	return nil
}

func (c controller) handleAdvance(ctx context.Context, _ *websocket.Conn, _ EmptyInput) error {
	if err := c.sessionService.Advance(ctx, c.getConnIdFromCtx(ctx)); err != nil {
		return fmt.Errorf("failed to advance: %w", err)
	}

	return nil
}

type ChatInput struct {
	Message string `json:"message"`
}

func (c controller) handleChat(ctx context.Context, _ *websocket.Conn, input ChatInput) error {
	if err := c.sessionService.SendChatMessage(ctx, &service.SendChatMessageParams{
		ConnId:  c.getConnIdFromCtx(ctx),
		Message: input.Message,
	}); err != nil {
		return fmt.Errorf("failed to send chat message: %w", err)
	}

	return nil
}

func (c controller) handleSyncRequest(ctx context.Context, _ *websocket.Conn, _ EmptyInput) error {
	if err := c.sessionService.RequestSync(ctx, c.getConnIdFromCtx(ctx)); err != nil {
		return fmt.Errorf("failed to sync: %w", err)
	}

	return nil
}
