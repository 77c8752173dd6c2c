package middleware

import (
	"net/http"
	"strings"
)

// SecurityHeaders sets baseline security headers on every response. Card
// handlers add their own Content-Security-Policy on top.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Permissions-Policy", "camera=(), geolocation=(), microphone=(), payment=(), usb=()")
		if isHTTPSRequest(r) {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}

func isHTTPSRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	for _, part := range strings.Split(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(part), "https") {
			return true
		}
	}
	// RFC 7239, e.g. "for=1.2.3.4;proto=https".
	for _, entry := range strings.Split(r.Header.Get("Forwarded"), ",") {
		for _, directive := range strings.Split(entry, ";") {
			k, v, ok := strings.Cut(strings.TrimSpace(directive), "=")
			if ok && strings.EqualFold(k, "proto") && strings.EqualFold(strings.Trim(v, `"`), "https") {
				return true
			}
		}
	}
	return false
}
