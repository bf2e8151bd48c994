package handlers

import (
	"net/http"
	"time"

	"github.com/applyhub/applyhub/internal/models"
	"github.com/applyhub/applyhub/internal/types"
	"github.com/applyhub/applyhub/internal/utils"
	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func adminResponse(admin *models.Admin) AdminResponse {
	return AdminResponse{ID: admin.ID, Name: admin.Name, Email: admin.Email}
}

func (h *Handler) Login(ctx *gin.Context) {
	var req LoginRequest
	if !h.bind(ctx, &req) {
		return
	}

	session, err := h.Admins.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	h.setSessionCookie(ctx, session.Token, int(time.Until(session.ExpiresAt).Seconds()))

	ctx.JSON(http.StatusOK, gin.H{
		"admin":     adminResponse(session.Admin),
		"token":     session.Token,
		"expiresAt": session.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) Logout(ctx *gin.Context) {
	h.setSessionCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) Me(ctx *gin.Context) {
	admin, err := utils.GetCurrentAdmin(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Admin not authenticated"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"admin": adminResponse(admin)})
}

func (h *Handler) setSessionCookie(ctx *gin.Context, value string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if h.Cookie.Secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.SessionCookieName,
		Value:    value,
		Path:     "/",
		Domain:   h.Cookie.Domain,
		MaxAge:   maxAge,
		Secure:   h.Cookie.Secure,
		HttpOnly: true,
		SameSite: sameSite,
	})
}
