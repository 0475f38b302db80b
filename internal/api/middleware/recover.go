package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/zatekoja/hospitalsite/internal/api/respond"
	"github.com/zatekoja/hospitalsite/internal/infrastructure/observability"
)

// Recover turns a panicking handler into a 500 response: JSON under /api,
// plain text elsewhere.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			observability.LoggerFromContext(r.Context()).Error().
				Interface("panic", rvr).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("Unhandled error while serving request")

			respond.ServerError(w, r)
		}()

		next.ServeHTTP(w, r)
	})
}
