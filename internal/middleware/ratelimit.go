package middleware

import (
	"log/slog"
	"net/http"

	"github.com/applyhub/applyhub/internal/ratelimit"
	"github.com/applyhub/applyhub/internal/utils"
	"github.com/gin-gonic/gin"
)

// RateLimit rejects callers that exceed the limiter's budget for their IP.
func RateLimit(limiter ratelimit.Limiter, logger *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ip := utils.ClientIP(ctx)

		if !limiter.Allow(ctx.Request.Context(), ip) {
			logger.Warn("rate limited", "ip", ip, "path", ctx.FullPath())
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many submissions, please try again later"})
			return
		}

		ctx.Next()
	}
}

// BodyLimit caps request bodies at n bytes.
func BodyLimit(n int64) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Body != nil {
			ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, n)
		}
		ctx.Next()
	}
}
