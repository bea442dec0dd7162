package inmemory

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sharetube/watchparty/internal/repository/connection"
)

type Config struct {
	SendBuffer int
	WriteWait  time.Duration
	PongWait   time.Duration
	PingPeriod time.Duration
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// repo delivers outbound messages to websocket connections by connection id.
// Each connection has a single writer goroutine fed by a bounded queue.
type repo struct {
	clients map[string]*client
	mu      sync.RWMutex
	logger  *slog.Logger
	cfg     Config
}

func NewRepo(logger *slog.Logger, cfg *Config) *repo {
	return &repo{
		clients: make(map[string]*client),
		logger:  logger,
		cfg:     *cfg,
	}
}

func (r *repo) Add(connId string, conn *websocket.Conn) error {
	c, err := r.register(connId, conn)
	if err != nil {
		return err
	}

	conn.SetReadDeadline(time.Now().Add(r.cfg.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(r.cfg.PongWait))
	})

	go r.writePump(connId, c)
	return nil
}

func (r *repo) register(connId string, conn *websocket.Conn) (*client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[connId]; ok {
		return nil, connection.ErrAlreadyExists
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, r.cfg.SendBuffer),
		done: make(chan struct{}),
	}
	r.clients[connId] = c

	r.logger.Debug("connection added", "conn_id", connId)
	return c, nil
}

func (r *repo) Remove(connId string) error {
	r.mu.Lock()
	c, ok := r.clients[connId]
	delete(r.clients, connId)
	r.mu.Unlock()

	if !ok {
		return connection.ErrNotFound
	}

	c.close()
	r.logger.Debug("connection removed", "conn_id", connId)
	return nil
}

// Send queues output for connId without blocking. A connection whose queue is
// full is closed; its reader then observes the disconnect.
func (r *repo) Send(connId string, output any) error {
	data, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	r.mu.RLock()
	c, ok := r.clients[connId]
	r.mu.RUnlock()
	if !ok {
		return connection.ErrNotFound
	}

	select {
	case <-c.done:
		return connection.ErrNotFound
	default:
	}

	select {
	case c.send <- data:
		return nil
	default:
		r.logger.Warn("send buffer full, closing connection", "conn_id", connId)
		c.close()
		return connection.ErrBackpressure
	}
}

func (r *repo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.clients)
}

func (r *repo) writePump(connId string, c *client) {
	ticker := time.NewTicker(r.cfg.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(r.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				r.logger.Debug("write failed", "conn_id", connId, "error", err)
				c.close()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(r.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				r.logger.Debug("ping failed", "conn_id", connId, "error", err)
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}
