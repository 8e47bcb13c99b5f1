package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"vetgate/internal/i18n"
	"vetgate/pkg/requestcontext"
)

const requestIDHeader = "X-Request-Id"

// requestIDMiddleware assigns every request a correlation ID, honoring one
// supplied by the caller.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithRequestID(r.Context(), id)))
	})
}

// localeMiddleware negotiates the response locale from Accept-Language.
func localeMiddleware(translator *i18n.Translator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := translator.Match(r.Header.Get("Accept-Language"))
			next.ServeHTTP(w, r.WithContext(requestcontext.WithLocale(r.Context(), locale)))
		})
	}
}

// accessLogMiddleware logs one line per request.
func accessLogMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"request_id", requestcontext.RequestID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// refreshSession renews the platform token pair ahead of expiry so proxied
// calls never go out with a token about to die. A failed refresh is left to
// the 401 path.
func (h *handlers) refreshSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.deps.Sessions != nil && h.deps.Sessions.Authenticated() {
			if err := h.deps.Sessions.EnsureFresh(r.Context()); err != nil {
				h.deps.Logger.Warn("session refresh failed",
					"request_id", requestcontext.RequestID(r.Context()),
					"error", err,
				)
			}
		}
		next.ServeHTTP(w, r)
	})
}
