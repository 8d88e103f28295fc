package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"todosync/internal/auth"
)

// RequestIDHeader carries the per-request id, generated when the client sends none.
const RequestIDHeader = "X-Request-ID"

// ContextKey is a custom type to avoid context key collisions.
type ContextKey string

// SubjectKey holds the verified token subject in the request context.
const SubjectKey ContextKey = "subject"

// requestLogger logs one line per request with its status and duration.
func requestLogger(log *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			m := httpsnoop.CaptureMetrics(next, w, r)
			log.Info("handled",
				"method", r.Method,
				"url", r.URL.String(),
				"status", m.Code,
				"duration", m.Duration,
				"request_id", id,
			)
		})
	}
}

// allowOrigin lets browser front-ends on any origin call the API.
func allowOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		next.ServeHTTP(w, r)
	})
}

// requireToken rejects requests without a valid "Bearer <token>" header.
// Preflight requests pass through.
func requireToken(v *auth.Verifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				writeErrorJSON(w, http.StatusUnauthorized, "Authorization header required")
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeErrorJSON(w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			claims, err := v.Verify(parts[1])
			if err != nil {
				writeErrorJSON(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), SubjectKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
