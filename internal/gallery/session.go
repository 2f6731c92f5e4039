// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gallery holds a visitor's search state and turns each search or
// load-more action into an Update: the markup to append, whether the view
// must be cleared first, the notices to show and the load-more visibility.
package gallery

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pdiddy/pixabay-gallery/internal/notify"
	"github.com/pdiddy/pixabay-gallery/internal/pixabay"
	"github.com/pdiddy/pixabay-gallery/internal/render"
	"github.com/pdiddy/pixabay-gallery/pkg/types"
)

// ErrNoQuery is returned by LoadMore before any search was submitted.
var ErrNoQuery = errors.New("no search submitted")

// Searcher fetches one page of hits.
type Searcher interface {
	Search(ctx context.Context, q pixabay.Query) (types.SearchResponse, error)
}

// Outcome classifies a fetch for the history log.
type Outcome string

const (
	OutcomeHits    Outcome = "hits"
	OutcomeEmpty   Outcome = "empty"
	OutcomeFailure Outcome = "failure"
)

// Fetch describes one completed request.
type Fetch struct {
	Query     string
	Page      int
	Hits      int
	TotalHits int
	Outcome   Outcome
	Err       error
	At        time.Time
}

// Recorder receives every completed fetch.
type Recorder interface {
	Record(ctx context.Context, f Fetch) error
}

// Update is the change a browser applies after an action.
type Update struct {
	// Reset clears the gallery before HTML is appended.
	Reset bool `json:"reset"`

	// HTML holds the photo-card fragments to append.
	HTML string `json:"html"`

	Notices []notify.Notice `json:"notices"`

	// ShowLoadMore is the load-more control's visibility after the update.
	ShowLoadMore bool `json:"showLoadMore"`

	// Page and Query echo the session state after the action.
	Page  int    `json:"page"`
	Query string `json:"query"`

	// Hits holds the fetched records, for callers that do not render HTML.
	Hits []types.Hit `json:"-"`
}

// Session is one visitor's page counter and query. Actions on a session
// are serialised, so at most one request is outstanding per session.
type Session struct {
	mu       sync.Mutex
	searcher Searcher
	recorder Recorder
	logger   *slog.Logger

	page  int
	query string
	// more mirrors the load-more visibility last sent to the visitor.
	more  bool

	// lastSeen is read without mu so idle sweeps never wait on a fetch.
	lastSeen atomic.Int64
}

// NewSession returns a session at page 1 with an empty query. recorder may be nil.
func NewSession(searcher Searcher, recorder Recorder, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{
		searcher: searcher,
		recorder: recorder,
		logger:   logger,
		page:     1,
	}
	s.touch()
	return s
}

// Page returns the current page number.
func (s *Session) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Query returns the current search text.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Submit starts a new search for text: the query is replaced, the page is
// reset to 1 and the view is cleared before the first page is rendered.
// Empty text is rejected with a warning and no request.
func (s *Session) Submit(ctx context.Context, text string) Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	text = strings.TrimSpace(text)
	if text == "" {
		return Update{
			Notices:      []notify.Notice{notify.EmptyQuery()},
			ShowLoadMore: s.more,
			Page:         s.page,
			Query:        s.query,
		}
	}

	s.query = text
	s.page = 1

	u := s.fetch(ctx)
	u.Reset = true
	s.more = u.ShowLoadMore
	return u
}

// LoadMore advances to the next page and appends its hits. The current view
// is never cleared.
func (s *Session) LoadMore(ctx context.Context) (Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.query == "" {
		return Update{Page: s.page}, ErrNoQuery
	}

	s.page++
	u := s.fetch(ctx)
	s.more = u.ShowLoadMore
	return u, nil
}

// fetch requests the current page and builds the update. Callers hold s.mu.
func (s *Session) fetch(ctx context.Context) Update {
	u := Update{Page: s.page, Query: s.query, ShowLoadMore: true}
	f := Fetch{Query: s.query, Page: s.page, At: time.Now()}

	resp, err := s.searcher.Search(ctx, pixabay.Query{Text: s.query, Page: s.page})
	if err != nil {
		s.logger.Error("image search failed", "query", s.query, "page", s.page, "error", err)
		f.Outcome, f.Err = OutcomeFailure, err
		s.record(ctx, f)
		u.Notices = []notify.Notice{notify.RequestFailed()}
		return u
	}

	f.Hits, f.TotalHits = len(resp.Hits), resp.TotalHits

	if len(resp.Hits) > 0 {
		html, err := render.CardsHTML(resp.Hits)
		if err != nil {
			s.logger.Error("rendering hits failed", "query", s.query, "page", s.page, "error", err)
			f.Outcome, f.Err = OutcomeFailure, err
			s.record(ctx, f)
			u.Notices = []notify.Notice{notify.RequestFailed()}
			return u
		}
		u.HTML = html
		u.Hits = resp.Hits
	}

	f.Outcome = Classify(resp)
	u.Notices, u.ShowLoadMore = Evaluate(s.page, resp)

	s.record(ctx, f)
	return u
}

func (s *Session) record(ctx context.Context, f Fetch) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, f); err != nil {
		s.logger.Warn("recording fetch failed", "query", f.Query, "page", f.Page, "error", err)
	}
}

func (s *Session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

// Classify returns OutcomeHits or OutcomeEmpty for a successful response.
func Classify(resp types.SearchResponse) Outcome {
	if len(resp.Hits) == 0 {
		return OutcomeEmpty
	}
	return OutcomeHits
}

// Evaluate returns the notices for a successful response to page and
// whether more pages may follow. Page 1 with hits announces the total; no
// hits warn; a short page ends the results.
func Evaluate(page int, resp types.SearchResponse) ([]notify.Notice, bool) {
	var notices []notify.Notice
	if len(resp.Hits) > 0 {
		if page == 1 {
			notices = append(notices, notify.Found(resp.TotalHits))
		}
	} else {
		notices = append(notices, notify.NoMatches())
	}

	if pixabay.IsLastPage(len(resp.Hits)) {
		notices = append(notices, notify.EndOfResults())
		return notices, false
	}
	return notices, true
}
