package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/unihub-dz/campus-report-backend/config"
	"github.com/unihub-dz/campus-report-backend/models"
	"github.com/unihub-dz/campus-report-backend/utils"
)

type RegisterInput struct {
	Name         string     `json:"name" binding:"required"`
	Email        string     `json:"email" binding:"required,email"`
	Password     string     `json:"password" binding:"required,min=8"`
	Role         string     `json:"role"`
	DepartmentID *uuid.UUID `json:"department_id"`
}

type LoginInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	IsAnonymous bool   `json:"is_anonymous"`
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": err.Error()})
		return
	}

	db := getDB(c)

	// Registration can only yield student or department_head accounts;
	// admins are provisioned by the seed tool.
	role := models.NormalizeRole(input.Role)
	if role == models.RoleAdmin {
		role = models.RoleStudent
	}

	if input.DepartmentID != nil {
		var count int64
		if err := db.Model(&models.Department{}).Where("id = ?", *input.DepartmentID).Count(&count).Error; err != nil || count == 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "department does not exist"})
			return
		}
	}

	var existing models.User
	if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "email already in use"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to hash password"})
		return
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		Password:     string(hashed),
		Role:         role,
		IsActive:     true,
		DepartmentID: input.DepartmentID,
	}
	if err := db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create user"})
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), string(user.Role), false, config.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to generate token"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user":    user,
		"token":   token,
	})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Validation failed", "errors": err.Error()})
		return
	}

	db := getDB(c)

	if input.IsAnonymous {
		anonymousLogin(c)
		return
	}

	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "email and password are required"})
		return
	}

	var user models.User
	if err := db.Preload("Department").Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The provided credentials are incorrect"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "The provided credentials are incorrect"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"message": "Your account has been deactivated. Please contact the administrator."})
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), string(user.Role), user.IsAnonymous, config.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to generate token"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// anonymousLogin creates a throwaway student account with generated
// credentials and a short-lived token. The row is never reused across
// sessions.
func anonymousLogin(c *gin.Context) {
	db := getDB(c)

	suffix := uuid.NewString()
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create anonymous user"})
		return
	}

	user := models.User{
		Name:        "Anonymous User",
		Email:       "anonymous-" + suffix + "@campus.local",
		Password:    string(hashed),
		Role:        models.RoleStudent,
		IsAnonymous: true,
		IsActive:    true,
	}
	if err := db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create anonymous user"})
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), string(user.Role), true, config.AnonymousTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to generate token"})
		return
	}

	user.Password = ""
	c.JSON(http.StatusOK, gin.H{
		"message": "Anonymous login successful",
		"token":   token,
		"user":    user,
	})
}

// CurrentUser returns the authenticated caller with department loaded.
func CurrentUser(c *gin.Context) {
	db := getDB(c)

	var user models.User
	if err := db.Preload("Department").First(&user, "id = ?", c.GetString("user_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	user.Password = ""
	c.JSON(http.StatusOK, user)
}

func RefreshToken(c *gin.Context) {
	// Anonymous sessions keep the short lifetime on refresh; a refresh must
	// never extend a throwaway session to the regular token window.
	ttl := config.TokenTTL
	if c.GetBool("is_anonymous") {
		ttl = config.AnonymousTTL
	}

	token, err := utils.GenerateToken(
		c.GetString("user_id"), c.GetString("role"), c.GetBool("is_anonymous"), ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Token refreshed successfully",
		"token":   token,
	})
}

// Logout is stateless for regular accounts: the client discards its token.
// Anonymous throwaway accounts are deactivated instead, which revokes any
// outstanding token at the auth middleware's is_active check.
func Logout(c *gin.Context) {
	if c.GetBool("is_anonymous") {
		db := getDB(c)
		if err := db.Model(&models.User{}).
			Where("id = ?", c.GetString("user_id")).
			Update("is_active", false).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to log out"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
