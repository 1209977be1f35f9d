package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unihub-dz/campus-report-backend/services"
)

type categoryInput struct {
	NameAr string `json:"name_ar" binding:"required,max=255"`
	NameFr string `json:"name_fr" binding:"required,max=255"`
}

func CreateCategory(c *gin.Context) {
	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": err.Error()})
		return
	}

	svc := services.NewCategoryService(getDB(c))
	category, err := svc.Create(services.CategoryInput{NameAr: input.NameAr, NameFr: input.NameFr})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Category created successfully",
		"category": category,
	})
}

func GetCategories(c *gin.Context) {
	svc := services.NewCategoryService(getDB(c))
	categories, err := svc.List()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func GetCategoryDetail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewCategoryService(getDB(c))
	category, err := svc.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category})
}

func UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": err.Error()})
		return
	}

	svc := services.NewCategoryService(getDB(c))
	category, err := svc.Update(id, services.CategoryInput{NameAr: input.NameAr, NameFr: input.NameFr})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Category updated successfully",
		"category": category,
	})
}

func DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewCategoryService(getDB(c))
	if err := svc.Delete(id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
