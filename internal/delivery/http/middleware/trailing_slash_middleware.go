package middleware

import (
	"net/http"
	"strings"
)

// TrimTrailingSlash strips trailing slashes from the path before routing so
// "/api/login/" and "/api/login" reach the same handler with the same method
// and body.
func TrimTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.URL.Path) > 1 && strings.HasSuffix(r.URL.Path, "/") {
			r = r.Clone(r.Context())
			r.URL.Path = trimSlashes(r.URL.Path)
			if r.URL.RawPath != "" {
				r.URL.RawPath = trimSlashes(r.URL.RawPath)
			}
		}
		next.ServeHTTP(w, r)
	})
}

func trimSlashes(path string) string {
	if trimmed := strings.TrimRight(path, "/"); trimmed != "" {
		return trimmed
	}
	return "/"
}
