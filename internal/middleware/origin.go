package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
)

// OriginCheck rejects cross-origin browser requests that don't match the
// allow-list. Requests without an Origin header pass (non-browser
// clients), and an empty allow-list disables the check entirely.
func OriginCheck(allowed []string, logger *slog.Logger) func(next http.Handler) http.Handler {
	allowedSet := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		allowedSet[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || len(allowedSet) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			u, err := url.Parse(origin)
			if err != nil || u.Scheme == "" || u.Host == "" || !allowedSet[u.Scheme+"://"+u.Host] {
				logger.Warn("request from disallowed origin", "origin", origin, "path", r.URL.Path)
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"success": false,
					"error":   "Origin not allowed.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
