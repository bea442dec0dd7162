package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// persister writes the registry snapshot to the store off the mutation path.
// Notifications coalesce: a burst of mutations results in one write of the
// latest state. Failed writes are retried after retryDelay.
type persister struct {
	roomRepo   iRoomRepo
	registry   *Registry
	logger     *slog.Logger
	timeout    time.Duration
	retryDelay time.Duration
	notifyCh   chan struct{}
}

func newPersister(roomRepo iRoomRepo, registry *Registry, logger *slog.Logger, timeout, retryDelay time.Duration) *persister {
	return &persister{
		roomRepo:   roomRepo,
		registry:   registry,
		logger:     logger,
		timeout:    timeout,
		retryDelay: retryDelay,
		notifyCh:   make(chan struct{}, 1),
	}
}

func (p *persister) Notify() {
	select {
	case p.notifyCh <- struct{}{}:
	default:
	}
}

func (p *persister) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.notifyCh:
			if err := p.Flush(ctx); err != nil {
				p.logger.WarnContext(ctx, "failed to persist snapshot", "error", err, "retry_in", p.retryDelay.String())
				time.AfterFunc(p.retryDelay, p.Notify)
			}
		}
	}
}

// Flush writes the current snapshot synchronously.
func (p *persister) Flush(ctx context.Context) error {
	snapshot := p.registry.snapshot()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.roomRepo.SaveSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	p.logger.DebugContext(ctx, "snapshot persisted", "rooms", len(snapshot))
	return nil
}

func (s *service) RunPersister(ctx context.Context) {
	s.persister.Run(ctx)
}

// Restore seeds the registry from the stored snapshot. Rooms idle longer than
// the inactivity timeout are dropped; restored rooms have no members.
func (s *service) Restore(ctx context.Context) (int, error) {
	snapshot, err := s.roomRepo.GetSnapshot(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get snapshot: %w", err)
	}

	cutoff := s.now().Add(-s.cfg.InactivityTimeout)
	restored := 0
	for id, rec := range snapshot {
		if err := validation.Validate(id, SessionIdRule...); err != nil {
			s.logger.WarnContext(ctx, "skipping room with invalid id", "session_id", id)
			continue
		}

		if !time.UnixMilli(rec.LastActivity).After(cutoff) {
			s.logger.DebugContext(ctx, "skipping expired room", "session_id", id)
			continue
		}

		if _, err := s.startRoom(fromRepoRoom(rec, s.cfg.PlaylistLimit)); err != nil {
			s.logger.WarnContext(ctx, "failed to restore room", "session_id", id, "error", err)
			continue
		}
		restored++
	}

	s.logger.InfoContext(ctx, "sessions restored", "restored", restored, "stored", len(snapshot))
	return restored, nil
}
