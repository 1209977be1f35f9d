package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unihub-dz/campus-report-backend/models"
	"github.com/unihub-dz/campus-report-backend/services"
)

type createReportInput struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description" binding:"required"`
	CategoryID  uuid.UUID `json:"category_id" binding:"required"`
	LocationID  uuid.UUID `json:"location_id" binding:"required"`
}

type updateReportInput struct {
	Title        *string              `json:"title"`
	Description  *string              `json:"description"`
	Status       *models.ReportStatus `json:"status"`
	CategoryID   *uuid.UUID           `json:"category_id"`
	LocationID   *uuid.UUID           `json:"location_id"`
	DepartmentID *uuid.UUID           `json:"department_id"`
}

type updateReportStatusInput struct {
	Status  models.ReportStatus `json:"status" binding:"required"`
	Comment string              `json:"comment" binding:"max=1000"`
}

func CreateReport(c *gin.Context) {
	var input createReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": err.Error()})
		return
	}

	svc := services.NewReportService(getDB(c))
	report, err := svc.Create(actorFromContext(c), services.CreateReportInput{
		Title:       input.Title,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		LocationID:  input.LocationID,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Report created successfully",
		"report":  report,
	})
}

func GetReports(c *gin.Context) {
	svc := services.NewReportService(getDB(c))
	reports, err := svc.List(actorFromContext(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

func GetReportDetail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewReportService(getDB(c))
	report, err := svc.Get(actorFromContext(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

func UpdateReport(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input updateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": err.Error()})
		return
	}

	svc := services.NewReportService(getDB(c))
	report, err := svc.Update(actorFromContext(c), id, services.UpdateReportInput{
		Title:        input.Title,
		Description:  input.Description,
		Status:       input.Status,
		CategoryID:   input.CategoryID,
		LocationID:   input.LocationID,
		DepartmentID: input.DepartmentID,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report updated successfully",
		"report":  report,
	})
}

func UpdateReportStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input updateReportStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": err.Error()})
		return
	}

	svc := services.NewReportService(getDB(c))
	report, err := svc.UpdateStatus(actorFromContext(c), id, input.Status, input.Comment)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Report status updated successfully",
		"report":  report,
	})
}

func DeleteReport(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewReportService(getDB(c))
	if err := svc.Delete(actorFromContext(c), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}
