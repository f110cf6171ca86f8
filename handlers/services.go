package handlers

import (
	"net/http"

	"karigar/models"
	"karigar/services/listing"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// ServiceHandler serves the service catalogue.
type ServiceHandler struct {
	Listing listing.ListingService
}

// NewServiceHandler creates a ServiceHandler.
func NewServiceHandler(svc listing.ListingService) *ServiceHandler {
	return &ServiceHandler{Listing: svc}
}

// ListServicesHandler GET /api/services
func (h *ServiceHandler) ListServicesHandler(c *gin.Context) {
	filter := models.ServiceFilter{
		Category:   c.Query("category"),
		Location:   c.Query("location"),
		Search:     c.Query("search"),
		ProviderID: c.Query("providerId"),
		Page:       pageFromQuery(c),
	}
	services, page, err := h.Listing.ListServices(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services, "pagination": page})
}

// GetServiceHandler GET /api/services/:id
func (h *ServiceHandler) GetServiceHandler(c *gin.Context) {
	service, err := h.Listing.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// CreateServiceHandler POST /api/services
func (h *ServiceHandler) CreateServiceHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var input listing.ServiceInput
	if !bindJSON(c, &input) {
		return
	}
	service, err := h.Listing.CreateService(c.Request.Context(), actor, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

// UpdateServiceHandler PUT /api/services/:id
func (h *ServiceHandler) UpdateServiceHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var input listing.ServiceUpdate
	if !bindJSON(c, &input) {
		return
	}
	service, err := h.Listing.UpdateService(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

// DeleteServiceHandler DELETE /api/services/:id
func (h *ServiceHandler) DeleteServiceHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.Listing.DeleteService(c.Request.Context(), actor, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
