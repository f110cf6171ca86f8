package handlers

import (
	"net/http"

	"karigar/services/notification"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the caller's notification inbox.
type NotificationHandler struct {
	Service notification.NotificationService
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

// ListNotificationsHandler GET /api/notifications
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	items, page, err := h.Service.ListNotifications(c.Request.Context(), actor.ID, pageFromQuery(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items, "pagination": page})
}

// MarkNotificationHandler PATCH /api/notifications/:id/read
func (h *NotificationHandler) MarkNotificationHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.Service.MarkRead(c.Request.Context(), actor.ID, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
