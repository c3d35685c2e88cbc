package api

import (
	"net"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/aishort/showcase-server/internal/errors"
	"github.com/aishort/showcase-server/internal/ratelimit"
)

// rateLimit is a per-operation middleware keyed by client IP.
func (s *Server) rateLimit(limiter *ratelimit.KeyedRateLimiter) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		ip := clientIP(ctx.RemoteAddr())
		if !limiter.Allow(ip) {
			s.logger.Warn("rate limit exceeded", "ip", ip, "operation", ctx.Operation().OperationID)
			_ = huma.WriteErr(s.api, ctx, http.StatusTooManyRequests, "too many requests, please try again later",
				domainerrors.RateLimited("too many requests, please try again later"))
			return
		}
		next(ctx)
	}
}

// clientIP strips the port from a remote address. RealIP may already have
// replaced it with a bare address.
func clientIP(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
