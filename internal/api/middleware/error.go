package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rpgo/wealth-projector/internal/api/models"
	"github.com/rpgo/wealth-projector/internal/log"
)

// ErrorHandler middleware handles panics and errors
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.FromContext(c.Request.Context()).Error("panic while serving request",
			log.FieldPath, c.Request.URL.Path, log.FieldError, fmt.Sprint(recovered))

		message := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			message = s
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.NewError(models.CodeInternalError, message))
	})
}
