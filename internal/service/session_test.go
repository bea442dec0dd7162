package service

import (
	"context"
	"strings"
	"testing"

	"github.com/sharetube/watchparty/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinSession(t *testing.T) {
	e := newTestEnv(t)
	id := e.createSession(t)

	e.join(t, id, "c1", "Alice")
	outs := e.rec.take("c1")
	require.Len(t, outs, 1)
	require.Equal(t, TypeSessionState, outs[0].Type)

	state := outs[0].Payload.(SessionState)
	assert.Equal(t, id, state.Id)
	assert.True(t, state.IsHost)
	assert.Equal(t, []domain.Member{{Id: "c1", Name: "Alice"}}, state.Participants)
	assert.Nil(t, state.CurrentItem)
	assert.False(t, state.IsPlaying)
	assert.Equal(t, []domain.QueueEntry{}, state.Queue)

	e.join(t, id, "c2", "<Bob>")
	outs = e.rec.take("c2")
	require.Len(t, outs, 1)
	state = outs[0].Payload.(SessionState)
	assert.False(t, state.IsHost)
	assert.Len(t, state.Participants, 2)

	assert.Equal(t, []Output{{
		Type:    TypeParticipantJoined,
		Payload: domain.Member{Id: "c2", Name: "&lt;Bob&gt;"},
	}}, e.rec.take("c1"))
}

func TestJoinSessionRejectsInvalidInput(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	id := e.createSession(t)

	cases := []struct {
		name      string
		sessionId string
		userName  string
	}{
		{"short id", "abc", "Alice"},
		{"bad id chars", "abcd_123", "Alice"},
		{"blank name", id, "   "},
		{"long name", id, strings.Repeat("a", 31)},
		{"control char", id, "bell\x07"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := e.s.JoinSession(ctx, &JoinSessionParams{ConnId: "c1", SessionId: tc.sessionId, Name: tc.userName})
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	assert.Equal(t, 0, e.rec.total())
	assert.Empty(t, e.room(t, id).Members)
}

func TestJoinUnknownSession(t *testing.T) {
	e := newTestEnv(t)

	err := e.s.JoinSession(context.Background(), &JoinSessionParams{ConnId: "c1", SessionId: "zzzz9999", Name: "Alice"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, 0, e.rec.total())
}

func TestJoinTrimsName(t *testing.T) {
	e := newTestEnv(t)
	id := e.createSession(t)

	e.join(t, id, "c1", "  Alice  ")
	assert.Equal(t, []domain.Member{{Id: "c1", Name: "Alice"}}, e.room(t, id).Members)
}

func TestHostTransfer(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	id := e.createSession(t)

	e.join(t, id, "c1", "Alice")
	e.join(t, id, "c2", "Bob")
	e.join(t, id, "c3", "Carol")
	e.rec.reset()

	require.NoError(t, e.s.Disconnect(ctx, "c1"))
	assert.Equal(t, []string{TypeParticipantLeft, TypeBecameHost}, e.rec.types("c2"))
	assert.Equal(t, []string{TypeParticipantLeft}, e.rec.types("c3"))
	assert.Empty(t, e.rec.take("c1"))
	assert.Equal(t, "c2", e.room(t, id).HostId)

	require.NoError(t, e.s.Disconnect(ctx, "c3"))
	assert.Equal(t, []string{TypeParticipantLeft}, e.rec.types("c2"))
	assert.Equal(t, "c2", e.room(t, id).HostId)

	require.NoError(t, e.s.Disconnect(ctx, "c2"))
	view := e.room(t, id)
	assert.Empty(t, view.Members)
	assert.Equal(t, "", view.HostId)
	assert.Equal(t, 1, e.s.registry.Len(), "empty session is kept")

	e.join(t, id, "c4", "Dave")
	state := e.rec.take("c4")[0].Payload.(SessionState)
	assert.True(t, state.IsHost)
}

func TestDisconnectWithoutSession(t *testing.T) {
	e := newTestEnv(t)

	require.NoError(t, e.s.Disconnect(context.Background(), "ghost"))
	assert.Equal(t, 0, e.rec.total())
}

func TestRejoin(t *testing.T) {
	e := newTestEnv(t)
	first := e.createSession(t)
	second := e.createSession(t)

	e.join(t, first, "c1", "Alice")
	e.join(t, first, "c2", "Bob")
	e.rec.reset()

	e.join(t, first, "c1", "Alice")
	assert.Equal(t, []string{TypeSessionState}, e.rec.types("c1"))
	assert.Empty(t, e.rec.take("c2"))
	assert.Len(t, e.room(t, first).Members, 2)

	e.join(t, second, "c1", "Alice")
	assert.Equal(t, []string{TypeSessionState}, e.rec.types("c1"))
	assert.Equal(t, []string{TypeParticipantLeft, TypeBecameHost}, e.rec.types("c2"))
	assert.Equal(t, []domain.Member{{Id: "c2", Name: "Bob"}}, e.room(t, first).Members)
	assert.Equal(t, []domain.Member{{Id: "c1", Name: "Alice"}}, e.room(t, second).Members)
}

func TestGetSession(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	id := e.createSession(t)
	e.join(t, id, "c1", "Alice")

	info, err := e.s.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, SessionInfo{Id: id, Participants: 1}, info)

	_, err = e.s.GetSession(ctx, "zzzz9999")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = e.s.GetSession(ctx, "../etc")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCreateSessionAfterShutdown(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, e.s.Shutdown(context.Background()))

	_, err := e.s.CreateSession(context.Background())
	assert.ErrorIs(t, err, ErrServiceStopped)
}
