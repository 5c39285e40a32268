package middleware

import (
	"net/http"
	"strings"
)

// FrameAncestors restricts which sites may embed the form in an iframe. An
// empty list or "*" allows any ancestor.
func FrameAncestors(allowed []string) func(http.Handler) http.Handler {
	sources := make([]string, 0, len(allowed)+1)
	sources = append(sources, "'self'")
	allowAny := len(allowed) == 0
	for _, origin := range allowed {
		origin = strings.TrimSpace(origin)
		switch origin {
		case "":
			continue
		case "*":
			allowAny = true
		default:
			sources = append(sources, origin)
		}
	}

	policy := "frame-ancestors " + strings.Join(sources, " ")
	if allowAny {
		policy = "frame-ancestors *"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Security-Policy", policy)
			next.ServeHTTP(w, r)
		})
	}
}
