// Package handlers exposes the portal over JSON HTTP.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/applyhub/applyhub/internal/drafts"
	"github.com/applyhub/applyhub/internal/services"
	"github.com/gin-gonic/gin"
)

// CookieConfig shapes the admin session cookie.
type CookieConfig struct {
	Domain string
	Secure bool
}

type Deps struct {
	Intake       *services.IntakeService
	Review       *services.ReviewService
	Applications *services.ApplicationService
	Courses      *services.CourseService
	Emails       *services.EmailService
	Admins       *services.AdminService
	Drafts       drafts.Store
	Ping         func(ctx context.Context) error
	Cookie       CookieConfig
	Logger       *slog.Logger
}

type Handler struct {
	Deps
}

func New(deps Deps) *Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Handler{Deps: deps}
}

// fail writes err as {"message", "errors"?}. Unexpected errors are logged
// and reported generically.
func (h *Handler) fail(ctx *gin.Context, err error) {
	appErr, ok := apperr.As(err)
	if !ok {
		h.Logger.Error("unhandled error", "path", ctx.FullPath(), "error", err)
		appErr = apperr.Internal("Internal server error", err)
	}

	body := gin.H{"message": appErr.Message}
	if len(appErr.Fields) > 0 {
		body["errors"] = appErr.Fields
	}
	ctx.JSON(apperr.HTTPStatus(appErr.Code), body)
}

// bind decodes a JSON body and answers the request itself on failure.
func (h *Handler) bind(ctx *gin.Context, dst interface{}) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "Request body too large"})
			return false
		}
		h.Logger.Debug("failed to bind JSON", "error", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return false
	}
	return true
}
