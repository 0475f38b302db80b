package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/zatekoja/hospitalsite/internal/api/respond"
)

const messageTooManyRequests = "Too many requests, please try again later."

// SubmissionRateLimit limits appointment submissions per client IP
func SubmissionRateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			if respond.IsAPI(r) {
				respond.Error(w, http.StatusTooManyRequests, messageTooManyRequests)
				return
			}
			http.Error(w, messageTooManyRequests, http.StatusTooManyRequests)
		}),
	)
}
