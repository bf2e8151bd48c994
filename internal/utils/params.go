package utils

import (
	"strings"

	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUUIDParam reads a resource id from the path. Ids are uuids, so a
// missing or malformed one cannot resolve and is reported as
// "<label> not found", e.g. "Application not found".
func GetUUIDParam(ctx *gin.Context, name, label string) (string, error) {
	value := strings.TrimSpace(ctx.Param(name))

	parsed, err := uuid.Parse(value)
	if value == "" || err != nil {
		return "", apperr.NotFound(label + " not found")
	}

	return parsed.String(), nil
}

// ClientIP returns the caller address used for rate limiting.
func ClientIP(ctx *gin.Context) string {
	if ip := ctx.ClientIP(); ip != "" {
		return ip
	}
	return ctx.Request.RemoteAddr
}
