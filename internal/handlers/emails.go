package handlers

import (
	"net/http"

	"github.com/applyhub/applyhub/internal/services"
	"github.com/applyhub/applyhub/internal/utils"
	"github.com/applyhub/applyhub/internal/validation"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListEmails(ctx *gin.Context) {
	emails, err := h.Emails.List(ctx.Request.Context())
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, emails)
}

func (h *Handler) GetEmail(ctx *gin.Context) {
	id, err := utils.GetUUIDParam(ctx, "id", "Email")
	if err != nil {
		h.fail(ctx, err)
		return
	}

	email, err := h.Emails.Get(ctx.Request.Context(), id)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, email)
}

func (h *Handler) CreateEmail(ctx *gin.Context) {
	var in validation.EmailInput
	if !h.bind(ctx, &in) {
		return
	}

	email, err := h.Emails.Create(ctx.Request.Context(), in)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"success": true, "message": "Email created successfully", "email": email})
}

func (h *Handler) UpdateEmail(ctx *gin.Context) {
	id, err := utils.GetUUIDParam(ctx, "id", "Email")
	if err != nil {
		h.fail(ctx, err)
		return
	}

	var in validation.EmailInput
	if !h.bind(ctx, &in) {
		return
	}

	email, err := h.Emails.Update(ctx.Request.Context(), id, in)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Email updated successfully", "email": email})
}

func (h *Handler) DeleteEmail(ctx *gin.Context) {
	id, err := utils.GetUUIDParam(ctx, "id", "Email")
	if err != nil {
		h.fail(ctx, err)
		return
	}

	if err := h.Emails.Delete(ctx.Request.Context(), id); err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": services.MsgEmailDeleted})
}
