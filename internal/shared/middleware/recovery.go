package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"reviews-backend/internal/shared/response"
)

// Recovery converts a handler panic into the standard error envelope
// instead of letting gin close the connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Str("route", c.FullPath()).
					Interface("panic", err).
					Msg("Panic recovered")

				response.InternalServerError(c, "Internal server error", "unexpected failure")
				c.Abort()
			}
		}()

		c.Next()
	}
}
