package middleware

import (
	"net/http"
	"strings"

	"karigar/models"
	"karigar/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const actorKey = "actor"

// JWTAuthMiddleware validates the bearer token and stores the caller in the
// request context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, utils.KindUnauthorized, "Missing or invalid Authorization header")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			utils.GetLogger().Debug("Token rejected", zap.Error(err))
			utils.JSONError(c, http.StatusUnauthorized, utils.KindUnauthorized, "Invalid token")
			return
		}

		c.Set(actorKey, utils.ActorFromClaims(claims))
		c.Next()
	}
}

// RequireRoles rejects callers whose role is not listed. It must run after
// JWTAuthMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, utils.KindUnauthorized, "Unauthorized")
			return
		}
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, utils.KindForbidden, "Access denied")
	}
}

// ActorFrom returns the authenticated caller set by JWTAuthMiddleware.
func ActorFrom(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok && actor.ID != ""
}

// SetActor stores actor on the context. Used by tests and internal callers.
func SetActor(c *gin.Context, actor models.Actor) {
	c.Set(actorKey, actor)
}
