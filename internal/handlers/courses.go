package handlers

import (
	"net/http"

	"github.com/applyhub/applyhub/internal/services"
	"github.com/applyhub/applyhub/internal/utils"
	"github.com/applyhub/applyhub/internal/validation"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListCourses(ctx *gin.Context) {
	courses, err := h.Courses.List(ctx.Request.Context())
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

func (h *Handler) GetCourse(ctx *gin.Context) {
	id, err := utils.GetUUIDParam(ctx, "id", "Course")
	if err != nil {
		h.fail(ctx, err)
		return
	}

	course, err := h.Courses.Get(ctx.Request.Context(), id)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

func (h *Handler) CreateCourse(ctx *gin.Context) {
	var in validation.CourseInput
	if !h.bind(ctx, &in) {
		return
	}

	course, err := h.Courses.Create(ctx.Request.Context(), in)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

func (h *Handler) UpdateCourse(ctx *gin.Context) {
	id, err := utils.GetUUIDParam(ctx, "id", "Course")
	if err != nil {
		h.fail(ctx, err)
		return
	}

	var in validation.CourseInput
	if !h.bind(ctx, &in) {
		return
	}

	course, err := h.Courses.Update(ctx.Request.Context(), id, in)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

func (h *Handler) DeleteCourse(ctx *gin.Context) {
	id, err := utils.GetUUIDParam(ctx, "id", "Course")
	if err != nil {
		h.fail(ctx, err)
		return
	}

	if err := h.Courses.Delete(ctx.Request.Context(), id); err != nil {
		h.fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": services.MsgCourseDeleted})
}
