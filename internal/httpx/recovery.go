package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recovery converts handler panics into HTTP 500 instead of tearing
// down the connection.
func Recovery() func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slog.ErrorContext(r.Context(), "Panic while serving request",
						"panic", rec,
						"http_path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()

			handler.ServeHTTP(w, r)
		})
	}
}
