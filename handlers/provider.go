package handlers

import (
	"net/http"

	"karigar/models"
	"karigar/services/provider"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// ProviderHandler serves the public provider directory.
type ProviderHandler struct {
	Service provider.ProviderService
}

// NewProviderHandler creates a ProviderHandler.
func NewProviderHandler(svc provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{Service: svc}
}

// ListProvidersHandler GET /api/providers
func (h *ProviderHandler) ListProvidersHandler(c *gin.Context) {
	filter := models.ProviderFilter{
		City:   c.Query("city"),
		Search: c.Query("search"),
		Page:   pageFromQuery(c),
	}
	providers, page, err := h.Service.ListProviders(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers, "pagination": page})
}

// GetProviderHandler GET /api/providers/:id
func (h *ProviderHandler) GetProviderHandler(c *gin.Context) {
	profile, err := h.Service.GetProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
