package middleware

import (
	"net"
	"net/http"

	"go.uber.org/zap"

	rl "github.com/keebstore/storefront/internal/http/rate_limiter"
	"github.com/keebstore/storefront/internal/observability"
)

// RateLimit rejects visitors that exceed their per-IP token bucket with 429.
func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.GetVisitor(ip).Allow() {
			observability.FromContext(r.Context()).Warn("rate limit exceeded", zap.String("ip", ip))
			w.Header().Set("Retry-After", "1")
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
