// Package web exposes a game over a small JSON API for browser front ends.
package web

import (
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"termgomoku/engine"
	"termgomoku/pointer"
)

// Options configures the HTTP adapter.
type Options struct {
	// Defaults fill in fields missing from a new-game request.
	Defaults engine.GameConfig
	// Layout is the pixel layout pointer lookups use. Its Size is replaced
	// by the size of the running game.
	Layout pointer.Layout
}

// server serialises every request onto the one engine it owns.
type server struct {
	mu   sync.Mutex
	eng  engine.GameEngine
	opts Options
	log  *slog.Logger
}

// NewServer wires routes and returns an http.Handler. A nil logger
// discards log output.
func NewServer(eng engine.GameEngine, opts Options, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &server{
		eng:  eng,
		opts: opts,
		log:  logger.With("component", "web"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/pointer", s.pointer)
		r.Route("/game", func(r chi.Router) {
			r.Get("/", s.game)
			r.Post("/", s.newGame)
			r.Post("/moves", s.play)
			r.Post("/undo", s.undo)
			r.Post("/redo", s.redo)
			r.Get("/sgf", s.sgf)
		})
	})
	return r
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
