package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
)

// Body size caps per endpoint. Orders carry a cart payload; contact
// messages are small.
const (
	MaxOrderBody   = 128 << 10
	MaxContactBody = 24 << 10
)

// parseJSONBody enforces the Content-Type, the size cap, and JSON shape
// before any further work, writing the rejection itself. The returned map
// is the untrusted payload; all shape assumptions belong to the
// normalizers downstream.
func parseJSONBody(w http.ResponseWriter, r *http.Request, maxBytes int64, logger *slog.Logger) (map[string]any, bool) {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "application/json") {
		WriteError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json.", logger)
		return nil, false
	}

	// Reject on the declared length first to avoid reading bodies that
	// announce themselves as oversized.
	if r.ContentLength > maxBytes {
		WriteError(w, http.StatusRequestEntityTooLarge, "Request body is too large.", logger)
		return nil, false
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body.", logger)
		return nil, false
	}
	if len(body) == 0 {
		WriteError(w, http.StatusBadRequest, "Request body is required.", logger)
		return nil, false
	}
	if int64(len(body)) > maxBytes {
		WriteError(w, http.StatusRequestEntityTooLarge, "Request body is too large.", logger)
		return nil, false
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON payload.", logger)
		return nil, false
	}

	return payload, true
}

// clientIP returns the caller's address for rate limiting. chi's RealIP
// middleware folds X-Forwarded-For / X-Real-IP into RemoteAddr before
// handlers run; when no forwarding header was present, Cloudflare's
// CF-Connecting-IP still carries the real client behind the proxy.
func clientIP(r *http.Request) string {
	addr := r.RemoteAddr
	if r.Header.Get("X-Forwarded-For") == "" {
		if cf := r.Header.Get("CF-Connecting-IP"); cf != "" {
			addr = cf
		}
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	addr = strings.ToLower(strings.TrimSpace(addr))
	if addr == "" {
		return "unknown"
	}
	return addr
}
