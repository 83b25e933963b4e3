package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/jaminalder/tictactoe-timetravel/internal/app"
)

// Option customizes the server.
type Option func(*handlers)

// WithLogger sets the access and error logger.
func WithLogger(l zerolog.Logger) Option {
	return func(h *handlers) { h.log = l.With().Str("component", "web").Logger() }
}

// WithHeartbeat sets the SSE keep-alive interval.
func WithHeartbeat(d time.Duration) Option {
	return func(h *handlers) {
		if d > 0 {
			h.heartbeat = d
		}
	}
}

// NewServer wires routes and returns an http.Handler. It installs the
// fragment renderer on s so subscribers receive re-rendered games.
func NewServer(s *app.Service, opts ...Option) http.Handler {
	h := &handlers{svc: s, tpl: loadTemplates(), log: zerolog.Nop(), heartbeat: defaultHeartbeat}
	for _, o := range opts {
		o(h)
	}
	s.SetRenderer(h.renderGame)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(h.log))

	r.Get("/", h.index)
	r.Get("/healthz", h.health)
	r.Post("/game", h.create)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Use(validGameID)
		r.Get("/", h.view)
		r.Get("/state", h.state)
		r.Post("/play", h.play)
		r.Post("/jump", h.jump)
		r.Post("/order", h.order)
		r.Get("/events", h.events)
	})
	return r
}

// validGameID answers 404 for ids that could never have been issued.
func validGameID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.ValidID(chi.URLParam(r, "id")) {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger emits one log event per request.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("duration", time.Since(start)).
					Str("request_id", chimw.GetReqID(r.Context())).
					Msg("request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
