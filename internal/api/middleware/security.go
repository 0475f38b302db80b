package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

const contentSecurityPolicy = "default-src 'self';base-uri 'self';font-src 'self' https: data:;" +
	"form-action 'self';frame-ancestors 'self';img-src 'self' data:;object-src 'none';" +
	"script-src 'self';script-src-attr 'none';style-src 'self' https: 'unsafe-inline';" +
	"upgrade-insecure-requests"

// SecurityHeaders sets the usual hardening headers on every response
func SecurityHeaders() func(http.Handler) http.Handler {
	sec := secure.New(secure.Options{
		ContentTypeNosniff:      true,
		CustomFrameOptionsValue: "SAMEORIGIN",
		BrowserXssFilter:        true,
		CustomBrowserXssValue:   "0",
		ReferrerPolicy:          "no-referrer",
		ContentSecurityPolicy:   contentSecurityPolicy,
		CrossOriginOpenerPolicy: "same-origin",
		STSSeconds:              15552000,
		STSIncludeSubdomains:    true,
		ForceSTSHeader:          true,
	})

	return func(next http.Handler) http.Handler {
		return sec.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Cross-Origin-Resource-Policy", "same-origin")
			h.Set("Origin-Agent-Cluster", "?1")
			h.Set("X-DNS-Prefetch-Control", "off")
			h.Set("X-Download-Options", "noopen")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
			h.Del("X-Powered-By")
			next.ServeHTTP(w, r)
		}))
	}
}
