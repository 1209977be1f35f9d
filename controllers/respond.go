package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unihub-dz/campus-report-backend/apperr"
	"github.com/unihub-dz/campus-report-backend/models"
	"github.com/unihub-dz/campus-report-backend/policy"
)

func getDB(c *gin.Context) *gorm.DB {
	return c.MustGet("db").(*gorm.DB)
}

// actorFromContext rebuilds the caller identity the auth middleware stored.
func actorFromContext(c *gin.Context) policy.Actor {
	id, _ := uuid.Parse(c.GetString("user_id"))
	return policy.Actor{
		ID:          id,
		Role:        models.Role(c.GetString("role")),
		IsAnonymous: c.GetBool("is_anonymous"),
	}
}

// abortWithError translates a core error kind into the HTTP response.
func abortWithError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"message": apperr.Message(err)})
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
