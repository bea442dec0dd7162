package service

import "github.com/sharetube/watchparty/internal/domain"

const (
	TypeSessionCreated    = "session-created"
	TypeSessionState      = "session-state"
	TypeItemChanged       = "item-changed"
	TypePlayStateChanged  = "play-state-changed"
	TypeSeeked            = "seeked"
	TypeQueueChanged      = "queue-changed"
	TypeParticipantJoined = "participant-joined"
	TypeParticipantLeft   = "participant-left"
	TypeChatMessage       = "chat-message"
	TypeBecameHost        = "became-host"
	TypeSyncResponse      = "sync-response"
	TypeInactivityWarning = "inactivity-warning"
	TypeSessionClosed     = "session-closed"
	TypeError             = "error"
)

type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type SessionCreated struct {
	SessionId string `json:"sessionId"`
}

type SessionState struct {
	Id           string              `json:"id"`
	Participants []domain.Member     `json:"participants"`
	CurrentItem  *domain.MediaRef    `json:"currentItem"`
	IsPlaying    bool                `json:"isPlaying"`
	Position     float64             `json:"position"`
	Queue        []domain.QueueEntry `json:"queue"`
	IsHost       bool                `json:"isHost"`
}

type ItemChanged struct {
	domain.MediaRef
	IsPlaying bool    `json:"isPlaying"`
	Position  float64 `json:"position"`
}

type PlayStateChanged struct {
	IsPlaying bool    `json:"isPlaying"`
	Position  float64 `json:"position"`
}

type Seeked struct {
	Position float64 `json:"position"`
}

type QueueChanged struct {
	Queue []domain.QueueEntry `json:"queue"`
}

type ChatMessage struct {
	User      string `json:"user"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

type SyncResponse struct {
	Position  float64 `json:"position"`
	IsPlaying bool    `json:"isPlaying"`
}

// Notice carries human-readable text for warnings, closures and errors.
type Notice struct {
	Message string `json:"message"`
}

type SessionInfo struct {
	Id           string           `json:"id"`
	Participants int              `json:"participants"`
	CurrentItem  *domain.MediaRef `json:"currentItem"`
	IsPlaying    bool             `json:"isPlaying"`
	Position     float64          `json:"position"`
	QueueLength  int              `json:"queueLength"`
}

func ErrorOutput(err error) Output {
	return Output{Type: TypeError, Payload: Notice{Message: err.Error()}}
}
