package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/sharetube/watchparty/internal/domain"
	"github.com/sharetube/watchparty/internal/repository/room/inmemory"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t  time.Time
	mu sync.Mutex
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.t = c.t.Add(d)
}

// recorder is a connection transport that keeps every output per connection.
type recorder struct {
	outputs map[string][]Output
	mu      sync.Mutex
}

func newRecorder() *recorder {
	return &recorder{outputs: make(map[string][]Output)}
}

func (r *recorder) Send(connId string, output any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.outputs[connId] = append(r.outputs[connId], output.(Output))
	return nil
}

// take returns and forgets the outputs delivered to connId.
func (r *recorder) take(connId string) []Output {
	r.mu.Lock()
	defer r.mu.Unlock()

	outputs := r.outputs[connId]
	delete(r.outputs, connId)
	return outputs
}

func (r *recorder) types(connId string) []string {
	outputs := r.take(connId)
	types := make([]string, 0, len(outputs))
	for _, out := range outputs {
		types = append(types, out.Type)
	}
	return types
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.outputs = make(map[string][]Output)
}

func (r *recorder) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, outputs := range r.outputs {
		n += len(outputs)
	}
	return n
}

type testEnv struct {
	s     *service
	rec   *recorder
	clock *fakeClock
	repo  iRoomRepo
}

func testConfig() *Config {
	return &Config{
		PlaylistLimit:     50,
		InactivityTimeout: 120 * time.Minute,
		WarningBefore:     15 * time.Minute,
		ReaperInterval:    10 * time.Minute,
		StoreTimeout:      time.Second,
		RetryDelay:        time.Second,
	}
}

func newTestEnvWithRepo(t *testing.T, repo iRoomRepo) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := newRecorder()
	clock := newFakeClock()

	s := New(NewRegistry(), repo, rec, logger, testConfig())
	s.now = clock.Now
	t.Cleanup(func() { s.Shutdown(context.Background()) })

	return &testEnv{s: s, rec: rec, clock: clock, repo: repo}
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithRepo(t, inmemory.NewRepo())
}

func (e *testEnv) createSession(t *testing.T) string {
	t.Helper()

	resp, err := e.s.CreateSession(context.Background())
	require.NoError(t, err)
	require.Regexp(t, "^[a-zA-Z0-9-]{8}$", resp.SessionId)
	return resp.SessionId
}

func (e *testEnv) join(t *testing.T, sessionId, connId, name string) {
	t.Helper()

	require.NoError(t, e.s.JoinSession(context.Background(), &JoinSessionParams{
		ConnId:    connId,
		SessionId: sessionId,
		Name:      name,
	}))
}

type roomView struct {
	Members       []domain.Member
	HostId        string
	Queue         []domain.QueueEntry
	Player        domain.Player
	LastActivity  time.Time
	WarningIssued bool
}

func (e *testEnv) room(t *testing.T, sessionId string) roomView {
	t.Helper()

	var view roomView
	require.NoError(t, e.s.inspect(context.Background(), sessionId, func(rm *domain.Room) {
		view = roomView{
			Members:       rm.Members.AsList(),
			HostId:        rm.Members.HostId(),
			Queue:         rm.Playlist.AsList(),
			Player:        rm.Player,
			LastActivity:  rm.LastActivity,
			WarningIssued: rm.WarningIssued,
		}
	}))
	return view
}

func video(id string) MediaRefParams {
	return MediaRefParams{Provider: "youtube", Id: id, Title: "title " + id}
}

func ptr[T any](v T) *T {
	return &v
}
