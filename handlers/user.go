package handlers

import (
	"net/http"

	"karigar/services/user"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the caller's own account.
type UserHandler struct {
	Service user.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc user.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

// GetMeHandler GET /api/users/me
func (h *UserHandler) GetMeHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	u, err := h.Service.GetUserByID(c.Request.Context(), actor.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateFCMTokenHandler PUT /api/users/me/fcm-token
func (h *UserHandler) UpdateFCMTokenHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var input struct {
		Token string `json:"token"`
	}
	if !bindJSON(c, &input) {
		return
	}
	if err := h.Service.RegisterFCMToken(c.Request.Context(), actor, input.Token); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "FCM token updated"})
}
