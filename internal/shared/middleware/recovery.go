package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"unispattes/internal/shared/response"
)

// Recovery turns panics into a 500. Admin API paths get the JSON envelope;
// other paths get renderPage when provided.
func Recovery(renderPage func(c *gin.Context, status int)) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Str("path", c.Request.URL.Path).
					Interface("error", err).
					Msg("Panic recovered")

				if renderPage == nil || strings.HasPrefix(c.Request.URL.Path, "/admin") {
					response.InternalServerError(c, "Erreur interne du serveur")
				} else {
					renderPage(c, http.StatusInternalServerError)
				}
				c.Abort()
			}
		}()

		c.Next()
	}
}
