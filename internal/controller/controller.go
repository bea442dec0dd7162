package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sharetube/watchparty/internal/service"
	"github.com/sharetube/watchparty/pkg/validator"
	"github.com/sharetube/watchparty/pkg/wsrouter"
	"github.com/sharetube/watchparty/pkg/ytsearch"
	"github.com/sharetube/watchparty/pkg/ytvideodata"
)

type iSessionService interface {
	CreateSession(context.Context) (service.CreateSessionResponse, error)
	JoinSession(context.Context, *service.JoinSessionParams) error
	Disconnect(context.Context, string) error
	GetSession(context.Context, string) (service.SessionInfo, error)
	SetItem(context.Context, *service.SetItemParams) error
	TogglePlay(context.Context, *service.TogglePlayParams) error
	Seek(context.Context, *service.SeekParams) error
	Advance(context.Context, string) error
	RequestSync(context.Context, string) error
	Enqueue(context.Context, *service.EnqueueParams) error
	ReorderQueue(context.Context, *service.ReorderQueueParams) error
	RemoveFromQueue(context.Context, *service.RemoveFromQueueParams) error
	SendChatMessage(context.Context, *service.SendChatMessageParams) error
}

type iConnRepo interface {
	Add(connId string, conn *websocket.Conn) error
	Remove(connId string) error
	Send(connId string, output any) error
}

type iVideoData interface {
	Get(ctx context.Context, videoId string) (*ytvideodata.VideoData, error)
}

type iSearch interface {
	Search(ctx context.Context, query string) ([]ytsearch.Video, error)
}

type controller struct {
	sessionService iSessionService
	connRepo       iConnRepo
	videoData      iVideoData
	search         iSearch
	upgrader       websocket.Upgrader
	validate       *validator.Validator
	wsRouter       *wsrouter.WSRouter
	logger         *slog.Logger
}

func NewController(
	sessionService iSessionService,
	connRepo iConnRepo,
	videoData iVideoData,
	search iSearch,
	logger *slog.Logger,
) *controller {
	c := &controller{
		sessionService: sessionService,
		connRepo:       connRepo,
		videoData:      videoData,
		search:         search,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		validate: validator.NewValidator(),
		logger:   logger,
	}
	c.wsRouter = c.getWSRouter()

	return c
}
