package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unihub-dz/campus-report-backend/services"
)

type locationInput struct {
	NameAr       string    `json:"name_ar" binding:"required,max=255"`
	NameFr       string    `json:"name_fr" binding:"required,max=255"`
	DepartmentID uuid.UUID `json:"department_id" binding:"required"`
}

func CreateLocation(c *gin.Context) {
	var input locationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": err.Error()})
		return
	}

	svc := services.NewLocationService(getDB(c))
	location, err := svc.Create(services.LocationInput{
		NameAr:       input.NameAr,
		NameFr:       input.NameFr,
		DepartmentID: input.DepartmentID,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Location created successfully",
		"location": location,
	})
}

func GetLocations(c *gin.Context) {
	svc := services.NewLocationService(getDB(c))
	locations, err := svc.List()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

func GetLocationDetail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewLocationService(getDB(c))
	location, err := svc.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"location": location})
}

func UpdateLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input locationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": err.Error()})
		return
	}

	svc := services.NewLocationService(getDB(c))
	location, err := svc.Update(id, services.LocationInput{
		NameAr:       input.NameAr,
		NameFr:       input.NameFr,
		DepartmentID: input.DepartmentID,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Location updated successfully",
		"location": location,
	})
}

func DeleteLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewLocationService(getDB(c))
	if err := svc.Delete(id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
}
