package handlers

import (
	"strconv"

	"karigar/middleware"
	"karigar/models"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the body into dst and writes a validation error on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.GetLogger().Debug("Malformed request body")
		utils.RespondError(c, utils.Validation("Invalid request body"))
		return false
	}
	return true
}

// requireActor returns the authenticated caller or writes a 401.
func requireActor(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		utils.RespondError(c, utils.Unauthorized("Unauthorized"))
		return models.Actor{}, false
	}
	return actor, true
}

// pageFromQuery reads ?page= and ?limit=. Bad values fall back to defaults.
func pageFromQuery(c *gin.Context) models.PageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return models.PageRequest{Page: page, Limit: limit}
}
