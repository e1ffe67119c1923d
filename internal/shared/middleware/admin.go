package middleware

import (
	"github.com/gin-gonic/gin"

	"unispattes/internal/shared/response"
)

// RequireStaff guards the JSON back office: 401 when anonymous, 403 for non-staff.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		if principal == nil {
			response.Unauthorized(c, "Authentification requise")
			c.Abort()
			return
		}

		if !principal.IsStaff {
			response.Forbidden(c, "Accès réservé au personnel du refuge")
			c.Abort()
			return
		}

		c.Next()
	}
}
