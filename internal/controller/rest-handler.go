package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sharetube/watchparty/internal/domain"
	"github.com/sharetube/watchparty/internal/service"
	"github.com/sharetube/watchparty/pkg/rest"
	"github.com/sharetube/watchparty/pkg/ytsearch"
	"github.com/sharetube/watchparty/pkg/ytvideodata"
)

type createSessionResponse struct {
	Id string `json:"id"`
}

func (c controller) createSession(w http.ResponseWriter, r *http.Request) {
	resp, err := c.sessionService.CreateSession(r.Context())
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to create session", "error", err)
		rest.WriteJSON(w, http.StatusServiceUnavailable, rest.Envelope{"error": err.Error()})
		return
	}

	rest.WriteJSON(w, http.StatusCreated, rest.Envelope{"data": createSessionResponse{Id: resp.SessionId}})
}

func (c controller) getSession(w http.ResponseWriter, r *http.Request) {
	sessionId := chi.URLParam(r, "session-id")

	info, err := c.sessionService.GetSession(r.Context(), sessionId)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": err.Error()})
			return
		}

		c.logger.WarnContext(r.Context(), "failed to get session", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": err.Error()})
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": info})
}

type searchQuery struct {
	Query string `json:"q" validate:"required,max=100"`
}

func (c controller) searchVideos(w http.ResponseWriter, r *http.Request) {
	req := searchQuery{Query: r.URL.Query().Get("q")}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		c.logger.DebugContext(r.Context(), "invalid search query", "errors", validationErrors)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	videos, err := c.search.Search(r.Context(), req.Query)
	if err != nil {
		c.logger.WarnContext(r.Context(), "search failed", "error", err)
		status := http.StatusBadGateway
		if errors.Is(err, ytsearch.ErrRateLimited) {
			status = http.StatusTooManyRequests
		}
		rest.WriteJSON(w, status, rest.Envelope{"error": err.Error()})
		return
	}

	results := make([]domain.MediaRef, 0, len(videos))
	for _, v := range videos {
		results = append(results, domain.MediaRef{
			Id:        v.Id,
			Title:     v.Title,
			Thumbnail: optional(v.Thumbnail),
			Artist:    optional(v.Channel),
			Provider:  domain.ProviderYouTube,
		})
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": results})
}

type videoParams struct {
	VideoId string `json:"video-id" validate:"required,len=11"`
}

func (c controller) getVideo(w http.ResponseWriter, r *http.Request) {
	req := videoParams{VideoId: chi.URLParam(r, "video-id")}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	video, err := c.videoData.Get(r.Context(), req.VideoId)
	if err != nil {
		if errors.Is(err, ytvideodata.ErrVideoNotFound) {
			rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": ytvideodata.ErrVideoNotFound.Error()})
			return
		}

		c.logger.WarnContext(r.Context(), "failed to get video data", "video_id", req.VideoId, "error", err)
		rest.WriteJSON(w, http.StatusBadGateway, rest.Envelope{"error": err.Error()})
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": domain.MediaRef{
		Id:        req.VideoId,
		Title:     video.Title,
		Thumbnail: optional(video.ThumbnailUrl),
		Artist:    optional(video.AuthorName),
		Provider:  domain.ProviderYouTube,
	}})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
