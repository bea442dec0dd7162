package ytvideodata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c := New(5 * time.Second)
	c.oembedUrl = srv.URL + "/oembed"
	c.pageUrl = srv.URL + "/page/"
	return c
}

func TestGetWithEmbed(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oembed", r.URL.Path)
		assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", r.URL.Query().Get("url"))
		w.Write([]byte(`{"title":"Never Gonna Give You Up","author_name":"Rick Astley","thumbnail_url":"https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg"}`))
	}))

	data, err := c.Get(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "Never Gonna Give You Up", data.Title)
	assert.Equal(t, "Rick Astley", data.AuthorName)
}

func TestGetFallsBackToPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oembed", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/page/abcdefghijk", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Hidden Gem - YouTube</title></head><body><span itemprop="author"><link itemprop="name" content="Some Channel"></span></body></html>`))
	})
	c := newTestClient(t, mux)

	data, err := c.Get(context.Background(), "abcdefghijk")
	require.NoError(t, err)
	assert.Equal(t, "Hidden Gem", data.Title)
	assert.Equal(t, "Some Channel", data.AuthorName)
	assert.Equal(t, "https://i.ytimg.com/vi/abcdefghijk/hqdefault.jpg", data.ThumbnailUrl)
}

func TestGetNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	_, err := c.Get(context.Background(), "missing0000")
	assert.ErrorIs(t, err, ErrVideoNotFound)
}
