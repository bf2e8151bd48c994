package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/applyhub/applyhub/internal/models"
	"github.com/applyhub/applyhub/internal/types"
	"github.com/gin-gonic/gin"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Admin, error)
}

// AdminAuth requires an admin session from the adminSession cookie or a
// Bearer token.
func AdminAuth(authenticator Authenticator) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := sessionToken(ctx)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token is required"})
			return
		}

		admin, err := authenticator.Authenticate(ctx.Request.Context(), token)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		ctx.Set(types.ContextAdminKey, admin)
		ctx.Next()
	}
}

func sessionToken(ctx *gin.Context) (string, bool) {
	if cookie, err := ctx.Cookie(types.SessionCookieName); err == nil && cookie != "" {
		return cookie, true
	}

	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)

	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}

	return strings.TrimSpace(parts[1]), true
}
