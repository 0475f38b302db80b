package middleware

import (
	"net"
	"net/http"
	"strings"
)

// TrustedProxy sets r.RemoteAddr to the client address reported by the
// nearest hops reverse proxies in X-Forwarded-For. With hops <= 0 the header
// is ignored and the socket peer stays the client.
func TrustedProxy(hops int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if hops <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ip := forwardedClient(r.Header.Values("X-Forwarded-For"), hops); ip != "" {
				r.RemoteAddr = ip
			}
			next.ServeHTTP(w, r)
		})
	}
}

// forwardedClient walks the chain right to left, skipping the entries
// appended by trusted proxies.
func forwardedClient(headers []string, hops int) string {
	var chain []string
	for _, h := range headers {
		for _, part := range strings.Split(h, ",") {
			if part = strings.TrimSpace(part); part != "" {
				chain = append(chain, part)
			}
		}
	}
	if len(chain) == 0 {
		return ""
	}

	idx := len(chain) - hops
	if idx < 0 {
		idx = 0
	}
	ip := net.ParseIP(chain[idx])
	if ip == nil {
		return ""
	}
	return ip.String()
}
