package httpx

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

type statusAwareResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusAwareResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Logger logs one structured line per request, with trace and request
// IDs when present.
func Logger() func(handler http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			saw := &statusAwareResponseWriter{ResponseWriter: w, status: http.StatusOK}

			defer func() {
				span := trace.SpanFromContext(r.Context())
				traceID := span.SpanContext().TraceID().String()

				logAttrs := []any{
					"http_method", r.Method,
					"http_path", r.URL.Path,
					"http_status", saw.status,
					"trace_id", traceID,
					"http_remote_addr", r.RemoteAddr,
				}

				if reqID := RequestIDFromContext(r.Context()); reqID != "" {
					logAttrs = append(logAttrs, "request_id", reqID)
				}

				if saw.status/100 == 5 {
					slog.ErrorContext(r.Context(), "HTTP request failed", logAttrs...)
				} else {
					slog.InfoContext(r.Context(), "HTTP request complete", logAttrs...)
				}
			}()

			handler.ServeHTTP(saw, r)
		})
	}
}
