package handlers

import (
	"net/http"
	"strconv"

	"karigar/models"
	"karigar/services/admin"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	Service admin.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc admin.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

// StatsHandler GET /api/admin/stats
func (h *AdminHandler) StatsHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	stats, err := h.Service.GetStats(c.Request.Context(), actor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetAllUsersHandler GET /api/admin/users
func (h *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	h.listUsers(c, "")
}

// GetAllProvidersHandler GET /api/admin/providers
func (h *AdminHandler) GetAllProvidersHandler(c *gin.Context) {
	h.listUsers(c, models.RoleProvider)
}

func (h *AdminHandler) listUsers(c *gin.Context, role models.Role) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	filter := models.UserFilter{
		Role:   role,
		City:   c.Query("city"),
		Search: c.Query("search"),
		Page:   pageFromQuery(c),
	}
	if raw := c.Query("role"); raw != "" && role == "" {
		parsed, valid := models.ParseRole(raw)
		if !valid {
			utils.RespondError(c, utils.Validation("Invalid role"))
			return
		}
		filter.Role = parsed
	}
	if active, err := strconv.ParseBool(c.Query("active")); err == nil {
		filter.OnlyActive = active
	}

	users, page, err := h.Service.ListUsers(c.Request.Context(), actor, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "pagination": page})
}

// UpdateUserHandler PUT /api/admin/users/:id
func (h *AdminHandler) UpdateUserHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var input admin.UpdateUserInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := h.Service.UpdateUser(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUserHandler DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUserHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.Service.DeleteUser(c.Request.Context(), actor, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
