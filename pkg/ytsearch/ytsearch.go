package ytsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var (
	ErrRateLimited = errors.New("search quota exceeded")
	ErrUnavailable = errors.New("search provider unavailable")
)

type Video struct {
	Id        string
	Title     string
	Channel   string
	Thumbnail string
}

type Client struct {
	httpClient *http.Client
	apiKey     string
	baseUrl    string
	maxResults int
}

func New(apiKey string, timeout time.Duration, maxResults int) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		baseUrl:    "https://www.googleapis.com/youtube/v3/search",
		maxResults: maxResults,
	}
}

type thumbnail struct {
	Url string `json:"url"`
}

type searchResponse struct {
	Items []struct {
		Id struct {
			VideoId string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string               `json:"title"`
			ChannelTitle string               `json:"channelTitle"`
			Thumbnails   map[string]thumbnail `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// Search returns embeddable videos matching query.
func (c Client) Search(ctx context.Context, query string) ([]Video, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("videoEmbeddable", "true")
	params.Set("maxResults", strconv.Itoa(c.maxResults))
	params.Set("q", query)
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseUrl+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden, http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("%w: unexpected status code: %d", ErrUnavailable, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	videos := make([]Video, 0, len(body.Items))
	for _, item := range body.Items {
		if item.Id.VideoId == "" {
			continue
		}

		videos = append(videos, Video{
			Id:        item.Id.VideoId,
			Title:     html.UnescapeString(item.Snippet.Title),
			Channel:   html.UnescapeString(item.Snippet.ChannelTitle),
			Thumbnail: pickThumbnail(item.Snippet.Thumbnails),
		})
	}

	return videos, nil
}

func pickThumbnail(thumbnails map[string]thumbnail) string {
	for _, size := range []string{"medium", "high", "default"} {
		if t, ok := thumbnails[size]; ok && t.Url != "" {
			return t.Url
		}
	}

	return ""
}
