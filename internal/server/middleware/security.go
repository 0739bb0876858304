package middleware

import (
	"net/http"
	"regexp"
)

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// SecurityHeaders adds the response headers appropriate for a JSON API that
// is never framed or rendered as a page.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cache-Control", "no-store")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")

		next.ServeHTTP(w, r)
	})
}

// SanitizeFilename makes s safe to embed in a Content-Disposition header.
func SanitizeFilename(s string) string {
	safe := unsafeFilename.ReplaceAllString(s, "_")
	if len(safe) > 100 {
		safe = safe[:100]
	}
	if safe == "" {
		safe = "download"
	}
	return safe
}
