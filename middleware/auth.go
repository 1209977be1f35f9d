package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/unihub-dz/campus-report-backend/models"
	"github.com/unihub-dz/campus-report-backend/utils"
)

// AuthMiddleware verifies the bearer token and stores the caller identity
// (user_id, role, is_anonymous) in the context. Deactivated accounts are
// rejected even when their token is still valid. Must run after
// DBMiddleware.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing Authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid Authorization header"})
			c.Abort()
			return
		}

		claims, err := utils.VerifyToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			c.Abort()
			return
		}

		db := c.MustGet("db").(*gorm.DB)
		var user models.User
		if err := db.Select("id", "is_active").First(&user, "id = ?", claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			c.Abort()
			return
		}
		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"message": "Your account has been deactivated. Please contact the administrator."})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", string(models.NormalizeRole(claims.Role)))
		c.Set("is_anonymous", claims.IsAnonymous)
		c.Next()
	}
}
