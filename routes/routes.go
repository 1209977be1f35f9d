package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/unihub-dz/campus-report-backend/controllers"
	"github.com/unihub-dz/campus-report-backend/middleware"
	"github.com/unihub-dz/campus-report-backend/ws"
)

// SetupRouter registers the route groups with the role gates the product
// defines: departments are admin-only, locations and categories are written
// by admin and department heads, reports and suggestions are open to every
// authenticated caller with row-level rules applied in the services.
func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(middleware.MetricsMiddleware())

	api := r.Group("/api")
	api.Use(middleware.DBMiddleware(db))

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		authed := auth.Group("")
		authed.Use(middleware.AuthMiddleware())
		authed.GET("/user", controllers.CurrentUser)
		authed.POST("/refresh-token", controllers.RefreshToken)
		authed.POST("/logout", controllers.Logout)
	}

	departments := api.Group("/departments")
	{
		departments.Use(middleware.AuthMiddleware())
		departments.GET("", controllers.GetDepartments)
		departments.GET("/:id", controllers.GetDepartmentDetail)

		adminOnly := departments.Group("")
		adminOnly.Use(middleware.RequireRoles("admin"))
		adminOnly.POST("", controllers.CreateDepartment)
		adminOnly.PUT("/:id", controllers.UpdateDepartment)
		adminOnly.DELETE("/:id", controllers.DeleteDepartment)
	}

	locations := api.Group("/locations")
	{
		locations.Use(middleware.AuthMiddleware())
		locations.GET("", controllers.GetLocations)
		locations.GET("/:id", controllers.GetLocationDetail)

		staff := locations.Group("")
		staff.Use(middleware.RequireRoles("admin", "department_admin"))
		staff.POST("", controllers.CreateLocation)
		staff.PUT("/:id", controllers.UpdateLocation)
		staff.DELETE("/:id", controllers.DeleteLocation)
	}

	categories := api.Group("/categories")
	{
		categories.Use(middleware.AuthMiddleware())
		categories.GET("", controllers.GetCategories)
		categories.GET("/:id", controllers.GetCategoryDetail)

		staff := categories.Group("")
		staff.Use(middleware.RequireRoles("admin", "department_admin"))
		staff.POST("", controllers.CreateCategory)
		staff.PUT("/:id", controllers.UpdateCategory)
		staff.DELETE("/:id", controllers.DeleteCategory)
	}

	reports := api.Group("/reports")
	{
		reports.Use(middleware.AuthMiddleware())
		reports.POST("", controllers.CreateReport)
		reports.GET("", controllers.GetReports)
		reports.GET("/:id", controllers.GetReportDetail)
		reports.PUT("/:id", controllers.UpdateReport)
		reports.PATCH("/:id/status", controllers.UpdateReportStatus)
		reports.DELETE("/:id", controllers.DeleteReport)
	}

	suggestions := api.Group("/suggestions")
	{
		suggestions.Use(middleware.AuthMiddleware())
		suggestions.POST("", controllers.CreateSuggestion)
		suggestions.GET("", controllers.GetSuggestions)
		suggestions.GET("/:id", controllers.GetSuggestionDetail)
		suggestions.PUT("/:id", controllers.UpdateSuggestion)
		suggestions.DELETE("/:id", controllers.DeleteSuggestion)
		suggestions.POST("/:id/vote", controllers.VoteSuggestion)
		suggestions.DELETE("/:id/vote", controllers.UnvoteSuggestion)
	}

	notifications := api.Group("/notifications")
	{
		notifications.Use(middleware.AuthMiddleware())
		notifications.GET("", controllers.GetNotifications)
		notifications.GET("/unread-count", controllers.GetUnreadCount)
		notifications.PATCH("/:id/read", controllers.MarkNotificationAsRead)
		notifications.PATCH("/read-all", controllers.MarkAllNotificationsAsRead)
	}

	r.GET("/ws/status", ws.HandleStatusWebSocket)

	return r
}
