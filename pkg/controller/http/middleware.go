package http

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/riskscope/pkg/utils/logging"
)

// requestLogger puts a logger tagged with the request ID into the request
// context so every log line of one request can be correlated
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.Default()
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			logger = logger.With("request_id", reqID)
		}
		ctx := logging.With(r.Context(), logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sentryMiddleware attaches a per-request hub. Panics are re-raised so that
// middleware.Recoverer still writes the 500 response.
func sentryMiddleware() func(http.Handler) http.Handler {
	handler := sentryhttp.New(sentryhttp.Options{
		Repanic: true,
	})
	return func(next http.Handler) http.Handler {
		return handler.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
				hub.Scope().SetTag("request_id", middleware.GetReqID(r.Context()))
			}
			next.ServeHTTP(w, r)
		}))
	}
}
