// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pixabay queries the Pixabay image search endpoint.
package pixabay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/pixabay-gallery/internal/httputil"
	"github.com/pdiddy/pixabay-gallery/pkg/types"
)

// DefaultBaseURL is the Pixabay image search endpoint.
const DefaultBaseURL = "https://pixabay.com/api/"

// PerPage is the fixed number of hits requested per page. A page with fewer
// hits than this is the last one.
const PerPage = 40

// Fixed result filters sent with every request.
const (
	imageType   = "photo"
	orientation = "horizontal"
	safeSearch  = "true"
)

// ErrEmptyQuery is returned when the trimmed query text is empty.
var ErrEmptyQuery = errors.New("query is empty")

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("pixabay API key is not configured")

// Query holds the parameters of one request.
type Query struct {
	Text string
	Page int
}

// Client queries the Pixabay API.
type Client struct {
	HTTP      *http.Client
	APIKey    string
	BaseURL   string
	UserAgent string
}

// NewClient builds a Client from cfg. A zero timeout leaves the
// http.Client without one.
func NewClient(cfg types.PixabayConfig) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		APIKey:    cfg.APIKey,
		BaseURL:   base,
		UserAgent: cfg.UserAgent,
	}
}

// Search fetches one page of hits for q.
func (c *Client) Search(ctx context.Context, q Query) (types.SearchResponse, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return types.SearchResponse{}, ErrEmptyQuery
	}
	if c.APIKey == "" {
		return types.SearchResponse{}, ErrMissingAPIKey
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	reqURL := c.BaseURL + "?" + buildParams(c.APIKey, text, page).Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return types.SearchResponse{}, fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	var sr types.SearchResponse
	if err := httputil.GetJSON(ctx, c.HTTP, req, &sr); err != nil {
		return types.SearchResponse{}, fmt.Errorf("pixabay request (page %d): %w", page, err)
	}
	return sr, nil
}

func buildParams(key, text string, page int) url.Values {
	return url.Values{
		"key":         {key},
		"q":           {text},
		"image_type":  {imageType},
		"orientation": {orientation},
		"safesearch":  {safeSearch},
		"per_page":    {strconv.Itoa(PerPage)},
		"page":        {strconv.Itoa(page)},
	}
}

// IsLastPage reports whether a page holding n hits ends the result set.
func IsLastPage(n int) bool {
	return n < PerPage
}
