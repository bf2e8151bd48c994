package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/applyhub/applyhub/internal/drafts"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) GetDraft(ctx *gin.Context) {
	key, ok := draftKey(ctx)
	if !ok {
		return
	}

	data, err := h.Drafts.Get(ctx.Request.Context(), key)
	if errors.Is(err, drafts.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Draft not found"})
		return
	}
	if err != nil {
		h.Logger.Error("get draft", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	ctx.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// PutDraft stores an opaque JSON object under key, replacing any earlier
// draft.
func (h *Handler) PutDraft(ctx *gin.Context) {
	key, ok := draftKey(ctx)
	if !ok {
		return
	}

	data, err := io.ReadAll(io.LimitReader(ctx.Request.Body, drafts.MaxSize+1))
	if err != nil {
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "Request body too large"})
		return
	}
	if len(data) > drafts.MaxSize {
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"message": "Draft is too large"})
		return
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(data, &object); err != nil || object == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Draft must be a JSON object"})
		return
	}

	if err := h.Drafts.Put(ctx.Request.Context(), key, data); err != nil {
		h.Logger.Error("put draft", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Draft saved"})
}

func (h *Handler) DeleteDraft(ctx *gin.Context) {
	key, ok := draftKey(ctx)
	if !ok {
		return
	}

	if err := h.Drafts.Delete(ctx.Request.Context(), key); err != nil {
		h.Logger.Error("delete draft", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Draft deleted"})
}

// draftKey reads the client-generated uuid naming a draft.
func draftKey(ctx *gin.Context) (string, bool) {
	key, err := uuid.Parse(ctx.Param("key"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid draft key"})
		return "", false
	}
	return key.String(), true
}
