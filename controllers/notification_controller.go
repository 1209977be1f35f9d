package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unihub-dz/campus-report-backend/services"
)

func GetNotifications(c *gin.Context) {
	actor := actorFromContext(c)
	svc := services.NewNotificationService(getDB(c))

	list, err := svc.ListForUser(actor.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

func GetUnreadCount(c *gin.Context) {
	actor := actorFromContext(c)
	svc := services.NewNotificationService(getDB(c))

	count, err := svc.UnreadCount(actor.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func MarkNotificationAsRead(c *gin.Context) {
	actor := actorFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid notification id"})
		return
	}

	svc := services.NewNotificationService(getDB(c))
	if err := svc.MarkRead(actor.ID, id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func MarkAllNotificationsAsRead(c *gin.Context) {
	actor := actorFromContext(c)
	svc := services.NewNotificationService(getDB(c))

	if err := svc.MarkAllRead(actor.ID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
