package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unihub-dz/campus-report-backend/models"
	"github.com/unihub-dz/campus-report-backend/services"
)

type createSuggestionInput struct {
	Title        string    `json:"title" binding:"required,max=255"`
	Description  string    `json:"description" binding:"required"`
	DepartmentID uuid.UUID `json:"department_id" binding:"required"`
}

type updateSuggestionInput struct {
	Title        *string                  `json:"title"`
	Description  *string                  `json:"description"`
	Status       *models.SuggestionStatus `json:"status"`
	DepartmentID *uuid.UUID               `json:"department_id"`
}

func CreateSuggestion(c *gin.Context) {
	var input createSuggestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": err.Error()})
		return
	}

	svc := services.NewSuggestionService(getDB(c))
	suggestion, err := svc.Create(actorFromContext(c), services.CreateSuggestionInput{
		Title:        input.Title,
		Description:  input.Description,
		DepartmentID: input.DepartmentID,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Suggestion created successfully",
		"suggestion": suggestion,
	})
}

func GetSuggestions(c *gin.Context) {
	svc := services.NewSuggestionService(getDB(c))
	suggestions, err := svc.List(actorFromContext(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func GetSuggestionDetail(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewSuggestionService(getDB(c))
	suggestion, err := svc.Get(actorFromContext(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	count, err := svc.VotesCount(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"suggestion":  suggestion,
		"votes_count": count,
	})
}

func UpdateSuggestion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input updateSuggestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": err.Error()})
		return
	}

	svc := services.NewSuggestionService(getDB(c))
	suggestion, err := svc.Update(actorFromContext(c), id, services.UpdateSuggestionInput{
		Title:        input.Title,
		Description:  input.Description,
		Status:       input.Status,
		DepartmentID: input.DepartmentID,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Suggestion updated successfully",
		"suggestion": suggestion,
	})
}

func DeleteSuggestion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewSuggestionService(getDB(c))
	if err := svc.Delete(actorFromContext(c), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Suggestion deleted successfully"})
}

func VoteSuggestion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewSuggestionService(getDB(c))
	count, err := svc.Vote(actorFromContext(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Vote recorded successfully",
		"votes_count": count,
	})
}

func UnvoteSuggestion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	svc := services.NewSuggestionService(getDB(c))
	count, err := svc.Unvote(actorFromContext(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Vote removed successfully",
		"votes_count": count,
	})
}
