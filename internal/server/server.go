// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server serves the search page and the JSON endpoints its script
// calls for search and load-more.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/pixabay-gallery/internal/gallery"
	"github.com/pdiddy/pixabay-gallery/internal/metrics"
	"github.com/pdiddy/pixabay-gallery/internal/notify"
	"github.com/pdiddy/pixabay-gallery/internal/render"
	"github.com/pdiddy/pixabay-gallery/pkg/types"
)

// CookieName holds the visitor's session ID.
const CookieName = "gallery_session"

const (
	defaultAddr            = ":8080"
	defaultShutdownTimeout = 10 * time.Second
)

// Server wires sessions to HTTP.
type Server struct {
	sessions *gallery.Sessions
	page     render.Page
	logger   *slog.Logger
	cfg      types.ServerConfig
}

// New returns a Server. A nil logger uses slog.Default.
func New(cfg types.ServerConfig, sessions *gallery.Sessions, opts notify.Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	return &Server{
		sessions: sessions,
		page:     render.Page{Notify: opts},
		logger:   logger,
		cfg:      cfg,
	}
}

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("POST /api/more", s.handleMore)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"result": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	return instrument(s.logger, mux)
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully. Idle sessions are swept while it runs.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sessions.Run(sweepCtx, 0)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// session resolves the visitor's session and refreshes the cookie.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *gallery.Session {
	var id string
	if c, err := r.Cookie(CookieName); err == nil {
		id = c.Value
	}
	id, sess := s.sessions.Get(id)
	metrics.ActiveSessions.Set(float64(s.sessions.Len()))

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.session(w, r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.Index(w, s.page); err != nil {
		s.logger.Error("rendering index failed", "error", err)
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, gallery.Update{
			Notices: []notify.Notice{notify.RequestFailed()},
		})
		return
	}
	sess := s.session(w, r)
	writeJSON(w, http.StatusOK, sess.Submit(r.Context(), r.PostFormValue("searchQuery")))
}

func (s *Server) handleMore(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	u, err := sess.LoadMore(r.Context())
	if errors.Is(err, gallery.ErrNoQuery) {
		u.Notices = []notify.Notice{notify.EmptyQuery()}
		writeJSON(w, http.StatusConflict, u)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
