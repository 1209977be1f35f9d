package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unihub-dz/campus-report-backend/models"
)

// RequireRoles lets only the named roles through. Legacy literals in the
// argument list ("department_admin") are normalized, so route declarations
// can keep the names the frontend still sends.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.Role(c.GetString("role"))
		for _, allowed := range allowedRoles {
			if role == models.NormalizeRole(allowed) {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"message": "You do not have the required role to access this resource",
		})
		c.Abort()
	}
}
