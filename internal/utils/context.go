package utils

import (
	"fmt"

	"github.com/applyhub/applyhub/internal/models"
	"github.com/applyhub/applyhub/internal/types"
	"github.com/gin-gonic/gin"
)

func GetCurrentAdmin(ctx *gin.Context) (*models.Admin, error) {
	value, exists := ctx.Get(types.ContextAdminKey)

	if !exists {
		return nil, fmt.Errorf("Admin not authenticated")
	}

	admin, ok := value.(*models.Admin)

	if !ok {
		return nil, fmt.Errorf("Invalid admin type in context")
	}

	return admin, nil
}
