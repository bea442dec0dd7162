package controller

import (
	"context"
	"errors"

	"github.com/gorilla/websocket"
	"github.com/sharetube/watchparty/internal/service"
	"github.com/sharetube/watchparty/pkg/wsrouter"
)

func (c controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()
	mux.Use(c.wsRequestIdMw(), c.loggerWSMw())
	mux.OnError(c.handleWSError)

	wsrouter.Handle(mux, "create-session", c.handleCreateSession)
	wsrouter.Handle(mux, "join-session", c.handleJoinSession)
	wsrouter.Handle(mux, "set-item", c.handleSetItem)
	wsrouter.Handle(mux, "toggle-play", c.handleTogglePlay)
	wsrouter.Handle(mux, "seek", c.handleSeek)
	wsrouter.Handle(mux, "enqueue", c.handleEnqueue)
	wsrouter.Handle(mux, "reorder", c.handleReorder)
	wsrouter.Handle(mux, "remove-from-queue", c.handleRemoveFromQueue)
	wsrouter.Handle(mux, "advance", c.handleAdvance)
	wsrouter.Handle(mux, "chat", c.handleChat)
	wsrouter.Handle(mux, "sync-request", c.handleSyncRequest)

	return mux
}

// handleWSError reports a failed event to the connection that sent it.
func (c controller) handleWSError(ctx context.Context, _ *websocket.Conn, err error) {
	if errors.Is(err, service.ErrValidation) ||
		errors.Is(err, wsrouter.ErrInvalidPayload) ||
		errors.Is(err, wsrouter.ErrInvalidMessage) ||
		errors.Is(err, wsrouter.ErrUnknownMessageType) {
		c.logger.DebugContext(ctx, "rejected websocket message", "error", err)
	} else {
		c.logger.WarnContext(ctx, "failed to handle websocket message", "error", err)
	}

	if sendErr := c.connRepo.Send(c.getConnIdFromCtx(ctx), service.ErrorOutput(err)); sendErr != nil {
		c.logger.DebugContext(ctx, "failed to send error", "error", sendErr)
	}
}
