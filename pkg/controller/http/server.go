package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/riskscope/pkg/usecase"
	"github.com/secmon-lab/riskscope/pkg/utils/logging"
	"github.com/secmon-lab/riskscope/pkg/utils/safe"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	sentry bool
}

type Options func(*Server)

// WithSentry installs the Sentry request middleware so panics and handled
// errors carry request context
func WithSentry(enabled bool) Options {
	return func(s *Server) {
		s.sentry = enabled
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	if s.sentry {
		r.Use(sentryMiddleware())
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		safe.Write(r.Context(), w, []byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/scoring", func(r chi.Router) {
			r.Get("/config", s.getScoringConfig)
			r.Put("/config", s.putScoringConfig)
			r.Get("/config/history", s.listScoringConfigHistory)
			r.Get("/score", s.getScore)
			r.Get("/heatmap", s.getHeatmap)
		})

		r.Get("/risk-config", s.getRiskConfig)

		r.Route("/risks", func(r chi.Router) {
			r.Get("/", s.listRisks)
			r.Post("/", s.createRisk)
			r.Get("/{id}", s.getRisk)
			r.Put("/{id}", s.updateRisk)
			r.Delete("/{id}", s.deleteRisk)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
