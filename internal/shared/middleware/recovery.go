package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"htc-backend/internal/shared/response"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("error", err).
					Bytes("stack", debug.Stack()).
					Msg("Panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorBody{
					Error:   "Internal server error",
					Details: fmt.Sprint(err),
				})
			}
		}()

		c.Next()
	}
}
