package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unihub-dz/campus-report-backend/config"
	"github.com/unihub-dz/campus-report-backend/ws"
)

func HealthCheck(c *gin.Context) {
	response := gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"db":        "ok",
		"websocket": ws.H.GetStats(),
	}

	sqlDB, err := config.DB.DB()
	if err != nil {
		response["db"] = "error"
		response["status"] = "degraded"
		c.JSON(http.StatusInternalServerError, response)
		return
	}
	if err := sqlDB.Ping(); err != nil {
		response["db"] = "error"
		response["status"] = "degraded"
		c.JSON(http.StatusInternalServerError, response)
		return
	}

	c.JSON(http.StatusOK, response)
}
