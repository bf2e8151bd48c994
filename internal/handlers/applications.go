package handlers

import (
	"net/http"
	"strings"

	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/applyhub/applyhub/internal/models"
	"github.com/applyhub/applyhub/internal/repository"
	"github.com/applyhub/applyhub/internal/services"
	"github.com/applyhub/applyhub/internal/types"
	"github.com/applyhub/applyhub/internal/utils"
	"github.com/applyhub/applyhub/internal/validation"
	"github.com/gin-gonic/gin"
)

func (h *Handler) SubmitApplication(ctx *gin.Context) {
	var submission validation.Submission
	if !h.bind(ctx, &submission) {
		return
	}

	application, err := h.Intake.Submit(ctx.Request.Context(), submission)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, application)
}

func (h *Handler) ListApplications(ctx *gin.Context) {
	applications, err := h.Applications.List(ctx.Request.Context())
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, applications)
}

// FetchApplications returns the admin dashboard bundle. Filters narrow the
// list; statistics always cover every application.
func (h *Handler) FetchApplications(ctx *gin.Context) {
	filter := repository.ApplicationFilter{
		Search:   strings.TrimSpace(ctx.Query("search")),
		Status:   types.Status(strings.TrimSpace(ctx.Query("status"))),
		CourseID: strings.TrimSpace(ctx.Query("courseId")),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	dashboard, err := h.Applications.Dashboard(ctx.Request.Context(), filter)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dashboard)
}

// ApplicationDetail is an application with the advisory next steps of its
// status for the review screen.
type ApplicationDetail struct {
	*models.Application
	NextStatuses []types.Status `json:"nextStatuses"`
	Terminal     bool           `json:"terminal"`
}

func applicationDetail(application *models.Application) ApplicationDetail {
	next := types.IntendedNext(application.Status)
	if next == nil {
		next = []types.Status{}
	}
	return ApplicationDetail{
		Application:  application,
		NextStatuses: next,
		Terminal:     types.Terminal(application.Status),
	}
}

func (h *Handler) GetApplication(ctx *gin.Context) {
	id, err := utils.GetUUIDParam(ctx, "id", "Application")
	if err != nil {
		h.fail(ctx, err)
		return
	}

	application, err := h.Applications.Get(ctx.Request.Context(), id)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, applicationDetail(application))
}

func (h *Handler) PatchApplication(ctx *gin.Context) {
	id, err := utils.GetUUIDParam(ctx, "id", "Application")
	if err != nil {
		h.fail(ctx, err)
		return
	}

	var in validation.ReviewInput
	if !h.bind(ctx, &in) {
		return
	}

	application, err := h.Review.Patch(ctx.Request.Context(), id, in)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, application)
}

// ReviewApplication is the admin update action. When the update is stored
// but the email step fails the response keeps success false and updated
// true so the dashboard can tell the two apart.
func (h *Handler) ReviewApplication(ctx *gin.Context) {
	id, err := utils.GetUUIDParam(ctx, "id", "Application")
	if err != nil {
		h.fail(ctx, err)
		return
	}

	var in validation.ReviewInput
	if !h.bind(ctx, &in) {
		return
	}

	result, err := h.Review.Review(ctx.Request.Context(), id, in)
	if err != nil {
		if result != nil && result.Updated {
			code := apperr.CodeDependency
			if appErr, ok := apperr.As(err); ok {
				code = appErr.Code
			}
			ctx.JSON(apperr.HTTPStatus(code), reviewBody(false, result))
			return
		}
		h.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, reviewBody(true, result))
}

func reviewBody(success bool, result *services.ReviewResult) gin.H {
	body := gin.H{
		"success":     success,
		"updated":     result.Updated,
		"message":     result.Message,
		"application": result.Application,
	}
	if result.Notification != nil {
		body["notification"] = result.Notification
	}
	return body
}

func (h *Handler) DeleteApplication(ctx *gin.Context) {
	id, err := utils.GetUUIDParam(ctx, "id", "Application")
	if err != nil {
		h.fail(ctx, err)
		return
	}

	if err := h.Applications.Delete(ctx.Request.Context(), id); err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": services.MsgApplicationDeleted})
}

func (h *Handler) ListNotifications(ctx *gin.Context) {
	id, err := utils.GetUUIDParam(ctx, "id", "Application")
	if err != nil {
		h.fail(ctx, err)
		return
	}

	notifications, err := h.Applications.Notifications(ctx.Request.Context(), id)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, notifications)
}
