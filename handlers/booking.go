package handlers

import (
	"net/http"
	"strings"

	"karigar/models"
	"karigar/services/booking"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the booking lifecycle endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBookingHandler books a slot. POST /api/bookings
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var input booking.CreateBookingInput
	if !bindJSON(c, &input) {
		return
	}

	created, err := h.Service.CreateBooking(c.Request.Context(), actor, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateBookingHandler applies a status, scheduledAt or notes change.
// PUT /api/bookings/:id
func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var changes booking.UpdateBookingInput
	if !bindJSON(c, &changes) {
		return
	}

	updated, err := h.Service.UpdateBooking(c.Request.Context(), c.Param("id"), actor, changes)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetBookingHandler GET /api/bookings/:id
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	b, err := h.Service.GetBooking(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListBookingsHandler lists the caller's bookings. GET /api/bookings
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	status, ok := statusFromQuery(c)
	if !ok {
		return
	}
	h.list(c, actor, models.BookingFilter{
		Status: status,
		Page:   pageFromQuery(c),
	})
}

// AdminBookingsHandler lists every booking, optionally for one customer or
// provider. GET /api/admin/bookings
func (h *BookingHandler) AdminBookingsHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	status, ok := statusFromQuery(c)
	if !ok {
		return
	}
	h.list(c, actor, models.BookingFilter{
		CustomerID: c.Query("customerId"),
		ProviderID: c.Query("providerId"),
		Status:     status,
		Page:       pageFromQuery(c),
	})
}

// statusFromQuery reads the optional ?status= filter and writes a 400 for an
// unknown status.
func statusFromQuery(c *gin.Context) (models.BookingStatus, bool) {
	raw := strings.ToUpper(strings.TrimSpace(c.Query("status")))
	if raw == "" {
		return "", true
	}
	status, err := models.ParseBookingStatus(raw)
	if err != nil {
		utils.RespondError(c, utils.Validation("Invalid status filter"))
		return "", false
	}
	return status, true
}

func (h *BookingHandler) list(c *gin.Context, actor models.Actor, filter models.BookingFilter) {
	bookings, page, err := h.Service.ListBookings(c.Request.Context(), actor, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "pagination": page})
}

// DeleteBookingHandler DELETE /api/bookings/:id
func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.Service.DeleteBooking(c.Request.Context(), actor, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
