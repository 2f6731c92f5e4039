// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gallery

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = 30 * time.Minute

// Sessions is an in-memory registry of visitor sessions keyed by an opaque
// ID. Sessions live only as long as the process.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration

	searcher Searcher
	recorder Recorder
	logger   *slog.Logger
}

// NewSessions creates an empty registry. A ttl of zero selects DefaultSessionTTL.
func NewSessions(searcher Searcher, recorder Recorder, ttl time.Duration, logger *slog.Logger) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sessions{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		searcher: searcher,
		recorder: recorder,
		logger:   logger,
	}
}

// Get returns the session for id. An unknown or malformed id yields a new
// session under a fresh ID; the returned ID is the one to hand back to the
// visitor.
func (r *Sessions) Get(id string) (string, *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := uuid.Parse(id); err == nil {
		if s, ok := r.sessions[id]; ok {
			return id, s
		}
	}

	id = uuid.NewString()
	s := NewSession(r.searcher, r.recorder, r.logger.With("session", id))
	r.sessions[id] = s
	return id, s
}

// Len returns the number of live sessions.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed.
func (r *Sessions) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.idleSince(now) > r.ttl {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps idle sessions every interval until ctx is cancelled.
func (r *Sessions) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.Sweep(now); n > 0 {
				r.logger.Debug("expired idle sessions", "removed", n, "remaining", r.Len())
			}
		}
	}
}
