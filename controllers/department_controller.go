package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unihub-dz/campus-report-backend/services"
)

type departmentInput struct {
	NameAr string `json:"name_ar" binding:"required,max=255"`
	NameFr string `json:"name_fr" binding:"required,max=255"`
}

func CreateDepartment(c *gin.Context) {
	var input departmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": err.Error()})
		return
	}

	svc := services.NewDepartmentService(getDB(c))
	department, err := svc.Create(services.DepartmentInput{NameAr: input.NameAr, NameFr: input.NameFr})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Department created successfully",
		"department": department,
	})
}

func GetDepartments(c *gin.Context) {
	svc := services.NewDepartmentService(getDB(c))
	departments, err := svc.List()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": departments})
}

func GetDepartmentDetail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewDepartmentService(getDB(c))
	department, err := svc.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"department": department})
}

func UpdateDepartment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input departmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": err.Error()})
		return
	}

	svc := services.NewDepartmentService(getDB(c))
	department, err := svc.Update(id, services.DepartmentInput{NameAr: input.NameAr, NameFr: input.NameFr})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Department updated successfully",
		"department": department,
	})
}

func DeleteDepartment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewDepartmentService(getDB(c))
	if err := svc.Delete(id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully"})
}
