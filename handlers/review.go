package handlers

import (
	"net/http"

	"karigar/models"
	"karigar/services/review"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// ReviewHandler serves review endpoints.
type ReviewHandler struct {
	Service review.ReviewService
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(svc review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

// CreateReviewHandler POST /api/reviews
func (h *ReviewHandler) CreateReviewHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var input review.CreateReviewInput
	if !bindJSON(c, &input) {
		return
	}
	created, err := h.Service.CreateReview(c.Request.Context(), actor, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListReviewsHandler GET /api/reviews
func (h *ReviewHandler) ListReviewsHandler(c *gin.Context) {
	filter := models.ReviewFilter{
		ProviderID: c.Query("providerId"),
		CustomerID: c.Query("customerId"),
		Page:       pageFromQuery(c),
	}
	reviews, page, err := h.Service.ListReviews(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "pagination": page})
}

// DeleteReviewHandler DELETE /api/reviews/:id
func (h *ReviewHandler) DeleteReviewHandler(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.Service.DeleteReview(c.Request.Context(), actor, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}
