package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sharetube/watchparty/internal/repository/connection"
	"github.com/sharetube/watchparty/pkg/ctxlogger"
)

// serveWS upgrades the request and reads client events until the connection
// closes. The connection then leaves its session.
func (c controller) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}

	connId := uuid.NewString()
	ctx := context.WithValue(r.Context(), connIdCtxKey, connId)
	ctx = ctxlogger.AppendCtx(ctx, slog.String("conn_id", connId))

	if err := c.connRepo.Add(connId, conn); err != nil {
		c.logger.WarnContext(ctx, "failed to add connection", "error", err)
		conn.Close()
		return
	}
	defer c.disconnect(ctx, connId)

	c.logger.InfoContext(ctx, "connection opened")

	if err := c.wsRouter.ServeConn(ctx, conn); err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			c.logger.InfoContext(ctx, "connection closed unexpectedly", "error", err)
			return
		}

		c.logger.DebugContext(ctx, "connection closed", "error", err)
	}
}

func (c controller) disconnect(ctx context.Context, connId string) {
	if err := c.sessionService.Disconnect(ctx, connId); err != nil {
		c.logger.WarnContext(ctx, "failed to disconnect from session", "error", err)
	}

	if err := c.connRepo.Remove(connId); err != nil && !errors.Is(err, connection.ErrNotFound) {
		c.logger.WarnContext(ctx, "failed to remove connection", "error", err)
	}
}
