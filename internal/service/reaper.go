package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sharetube/watchparty/internal/domain"
)

type sweepMsg struct {
	now time.Time
}

// RunReaper sweeps all rooms every ReaperInterval until ctx is done.
func (s *service) RunReaper(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.ReaperInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep warns rooms nearing the inactivity timeout and closes expired ones.
// Each room is checked on its own actor, so a sweep never interleaves with an
// event being applied to the same room.
func (s *service) Sweep(ctx context.Context) {
	now := s.now()
	for _, a := range s.registry.list() {
		if err := a.submit(ctx, sweepMsg{now: now}); err != nil && !errors.Is(err, ErrSessionNotFound) {
			s.logger.WarnContext(ctx, "failed to sweep session", "session_id", a.room.Id, "error", err)
		}
	}
}

func (a *roomActor) sweep(ctx context.Context, msg sweepMsg) error {
	timeout := a.s.cfg.InactivityTimeout

	switch a.room.Inactivity(msg.now, timeout, a.s.cfg.WarningBefore) {
	case domain.InactivityWarn:
		a.room.WarningIssued = true
		minutes := int(math.Ceil((timeout - a.room.IdleFor(msg.now)).Minutes()))
		a.broadcast(Output{
			Type:    TypeInactivityWarning,
			Payload: Notice{Message: fmt.Sprintf("This session will close in %d minutes due to inactivity.", minutes)},
		})

		a.s.logger.InfoContext(ctx, "inactivity warning issued", "session_id", a.room.Id)
	case domain.InactivityExpired:
		a.broadcast(Output{
			Type:    TypeSessionClosed,
			Payload: Notice{Message: "This session was closed due to inactivity."},
		})
		a.s.registry.remove(a.room.Id)
		a.s.persister.Notify()
		a.closed = true

		a.s.logger.InfoContext(ctx, "session closed", "session_id", a.room.Id, "idle", a.room.IdleFor(msg.now).String())
	}

	return nil
}
