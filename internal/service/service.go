package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sharetube/watchparty/internal/domain"
	"github.com/sharetube/watchparty/internal/repository/room"
	"github.com/sharetube/watchparty/pkg/randstr"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrSessionNotFound = errors.New("session not found")
	ErrNothingPlaying  = errors.New("nothing is playing")
	ErrServiceStopped  = errors.New("service stopped")
)

const (
	roomIdLength        = 8
	roomIdMaxAttempts   = 10
	defaultRetryDelay   = 5 * time.Second
	defaultStoreTimeout = 5 * time.Second
)

type iRoomRepo interface {
	SaveSnapshot(context.Context, room.Snapshot) error
	GetSnapshot(context.Context) (room.Snapshot, error)
}

type iConnRepo interface {
	Send(connId string, output any) error
}

type iGenerator interface {
	GenerateRandomString(length int) string
}

type Config struct {
	PlaylistLimit     int
	InactivityTimeout time.Duration
	WarningBefore     time.Duration
	ReaperInterval    time.Duration
	StoreTimeout      time.Duration
	RetryDelay        time.Duration
}

type service struct {
	registry  *Registry
	roomRepo  iRoomRepo
	connRepo  iConnRepo
	generator iGenerator
	persister *persister
	logger    *slog.Logger
	now       func() time.Time
	cfg       Config
}

func New(registry *Registry, roomRepo iRoomRepo, connRepo iConnRepo, logger *slog.Logger, cfg *Config) *service {
	letterBytes := []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

	c := *cfg
	if c.StoreTimeout <= 0 {
		c.StoreTimeout = defaultStoreTimeout
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaultRetryDelay
	}

	return &service{
		registry:  registry,
		roomRepo:  roomRepo,
		connRepo:  connRepo,
		generator: randstr.New(letterBytes),
		persister: newPersister(roomRepo, registry, logger, c.StoreTimeout, c.RetryDelay),
		logger:    logger,
		now:       time.Now,
		cfg:       c,
	}
}

// submit delivers msg to the actor of roomId and waits until it is handled.
func (s *service) submit(ctx context.Context, roomId string, msg any) error {
	a, ok := s.registry.get(roomId)
	if !ok {
		return ErrSessionNotFound
	}

	return a.submit(ctx, msg)
}

// submitFromConn routes msg to the room connId has joined. Events from
// connections outside any room are dropped.
func (s *service) submitFromConn(ctx context.Context, connId string, msg any) error {
	roomId, ok := s.registry.roomOf(connId)
	if !ok {
		s.logger.DebugContext(ctx, "ignoring event from detached connection", "conn_id", connId)
		return nil
	}

	if err := s.submit(ctx, roomId, msg); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}

		return err
	}

	return nil
}

func (s *service) inspect(ctx context.Context, roomId string, fn func(*domain.Room)) error {
	return s.submit(ctx, roomId, inspectMsg{fn: fn})
}

// Shutdown stops every room actor and writes a final snapshot.
func (s *service) Shutdown(ctx context.Context) error {
	for _, a := range s.registry.close() {
		a.stop()
	}

	return s.persister.Flush(ctx)
}
