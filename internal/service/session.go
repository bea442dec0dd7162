package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/sharetube/watchparty/internal/domain"
)

var errRoomIdExhausted = errors.New("failed to generate unique room id")

type joinMsg struct {
	connId string
	name   string
}

type leaveMsg struct {
	connId string
}

type resendStateMsg struct {
	connId string
}

type CreateSessionResponse struct {
	SessionId string
}

func (s *service) CreateSession(ctx context.Context) (CreateSessionResponse, error) {
	for i := 0; i < roomIdMaxAttempts; i++ {
		roomId := s.generator.GenerateRandomString(roomIdLength)

		_, err := s.startRoom(domain.NewRoom(roomId, s.cfg.PlaylistLimit, s.now()))
		if err != nil {
			if errors.Is(err, errRoomExists) {
				continue
			}

			return CreateSessionResponse{}, err
		}

		s.persister.Notify()
		s.logger.InfoContext(ctx, "session created", "session_id", roomId)
		return CreateSessionResponse{SessionId: roomId}, nil
	}

	return CreateSessionResponse{}, errRoomIdExhausted
}

type JoinSessionParams struct {
	ConnId    string `json:"connId"`
	SessionId string `json:"sessionId"`
	Name      string `json:"name"`
}

// JoinSession adds the connection to a session. A connection already in
// another session leaves it first; rejoining the same session only resends
// its state.
func (s *service) JoinSession(ctx context.Context, params *JoinSessionParams) error {
	params.SessionId = strings.TrimSpace(params.SessionId)
	params.Name = strings.TrimSpace(params.Name)
	if err := validation.ValidateStructWithContext(ctx, params,
		validation.Field(&params.ConnId, ConnIdRule...),
		validation.Field(&params.SessionId, SessionIdRule...),
		validation.Field(&params.Name, NameRule...),
	); err != nil {
		return validationError(err)
	}

	if current, ok := s.registry.roomOf(params.ConnId); ok {
		if current == params.SessionId {
			return s.submit(ctx, current, resendStateMsg{connId: params.ConnId})
		}

		if err := s.submit(ctx, current, leaveMsg{connId: params.ConnId}); err != nil && !errors.Is(err, ErrSessionNotFound) {
			return fmt.Errorf("failed to leave previous session: %w", err)
		}
	}

	return s.submit(ctx, params.SessionId, joinMsg{
		connId: params.ConnId,
		name:   escapeHTML(params.Name),
	})
}

// Disconnect removes the connection from its session, if any.
func (s *service) Disconnect(ctx context.Context, connId string) error {
	roomId, ok := s.registry.roomOf(connId)
	if !ok {
		return nil
	}

	if err := s.submit(ctx, roomId, leaveMsg{connId: connId}); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("failed to leave session: %w", err)
	}

	return nil
}

func (s *service) GetSession(ctx context.Context, sessionId string) (SessionInfo, error) {
	if err := validation.Validate(sessionId, SessionIdRule...); err != nil {
		return SessionInfo{}, ErrSessionNotFound
	}

	var info SessionInfo
	if err := s.inspect(ctx, sessionId, func(rm *domain.Room) {
		info = SessionInfo{
			Id:           rm.Id,
			Participants: rm.Members.Length(),
			CurrentItem:  rm.Player.CurrentItem,
			IsPlaying:    rm.Player.IsPlaying,
			Position:     rm.Player.PositionAt(s.now()),
			QueueLength:  rm.Playlist.Length(),
		}
	}); err != nil {
		return SessionInfo{}, err
	}

	return info, nil
}

func (a *roomActor) join(ctx context.Context, msg joinMsg, now time.Time) error {
	isHost, err := a.room.Members.Add(domain.Member{Id: msg.connId, Name: msg.name})
	if err != nil {
		return err
	}
	a.s.registry.bindConn(msg.connId, a.room.Id)

	a.sendTo(msg.connId, a.sessionState(msg.connId, now))
	a.broadcastExcept(msg.connId, Output{
		Type:    TypeParticipantJoined,
		Payload: domain.Member{Id: msg.connId, Name: msg.name},
	})
	a.commit(now)

	a.s.logger.InfoContext(ctx, "member joined",
		"session_id", a.room.Id,
		"conn_id", msg.connId,
		"is_host", isHost,
		"members", a.room.Members.Length(),
	)
	return nil
}

func (a *roomActor) leave(ctx context.Context, msg leaveMsg, now time.Time) error {
	member, newHost, err := a.room.Members.RemoveById(msg.connId)
	if err != nil {
		return nil
	}
	a.s.registry.unbindConn(msg.connId, a.room.Id)

	a.broadcast(Output{Type: TypeParticipantLeft, Payload: member})
	if newHost != nil {
		a.sendTo(newHost.Id, Output{Type: TypeBecameHost})
	}
	a.commit(now)

	a.s.logger.InfoContext(ctx, "member left",
		"session_id", a.room.Id,
		"conn_id", msg.connId,
		"members", a.room.Members.Length(),
	)
	return nil
}
