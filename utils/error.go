package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error: "Internal server error",
					Code:  string(KindInternal),
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, kind ErrorKind, message string) {
	GetLogger().Warn(message, zap.Int("status", status), zap.String("code", string(kind)))
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Code: string(kind)})
}

// RespondError maps err onto the HTTP error body. Errors that are not an
// AppError are logged and reported as a generic internal error.
func RespondError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok || appErr.Kind == KindInternal {
		GetLogger().Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Internal server error",
			Code:  string(KindInternal),
		})
		return
	}
	c.AbortWithStatusJSON(appErr.Kind.HTTPStatus(), ErrorResponse{
		Error: appErr.Message,
		Code:  string(appErr.Kind),
	})
}
