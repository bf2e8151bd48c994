package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HealthCheck(ctx *gin.Context) {
	status, code := "ok", http.StatusOK
	if h.Ping != nil {
		if err := h.Ping(ctx.Request.Context()); err != nil {
			h.Logger.Error("health check failed", "error", err)
			status, code = "degraded", http.StatusServiceUnavailable
		}
	}

	ctx.JSON(code, gin.H{
		"status":    status,
		"message":   "applyhub is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
