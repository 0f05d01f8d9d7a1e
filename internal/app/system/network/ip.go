// Package network holds request address helpers.
package network

import (
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ClientIP returns the caller's address. Proxy headers win over RemoteAddr:
// the first hop of X-Forwarded-For, then X-Real-IP.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// IPField is ClientIP as a zap field, for auth and authorization logs.
func IPField(r *http.Request) zap.Field {
	return zap.String("ip", ClientIP(r))
}
