package errutil

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskscope/pkg/utils/logging"
)

// Handle logs err with msg and forwards it to Sentry when a client is
// configured. It returns err unchanged.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logging.From(ctx).Error(msg, errorAttrs(err)...)
	report(ctx, err)

	return err
}

// HandleHTTP logs err and writes statusCode with err's message. Only 5xx
// errors are reported to Sentry; 4xx are caller mistakes.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	attrs := append([]any{slog.Int("status", statusCode)}, errorAttrs(err)...)
	if statusCode >= http.StatusInternalServerError {
		logging.From(ctx).Error("HTTP error", attrs...)
		report(ctx, err)
	} else {
		logging.From(ctx).Warn("HTTP error", attrs...)
	}

	http.Error(w, err.Error(), statusCode)
}

func errorAttrs(err error) []any {
	var ge *goerr.Error
	if errors.As(err, &ge) {
		return []any{
			slog.String("error", err.Error()),
			slog.Any("values", ge.Values()),
			slog.Any("stack", ge.Stacks()),
		}
	}
	return []any{slog.String("error", err.Error())}
}

func report(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		var ge *goerr.Error
		if errors.As(err, &ge) && len(ge.Values()) > 0 {
			values := sentry.Context{}
			for k, v := range ge.Values() {
				values[k] = v
			}
			scope.SetContext("goerr", values)
		}
		evID := hub.CaptureException(err)
		if evID != nil {
			logging.From(ctx).Info("error reported to sentry", slog.Any("event_id", *evID))
		}
	})
}
