package controllers

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fit-lynq/api-go/models"
	"github.com/fit-lynq/api-go/utils"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// validateUsernamePattern validates username format and constraints
func validateUsernamePattern(username string) error {
	trimmedUsername := strings.TrimSpace(username)

	if len(trimmedUsername) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}
	if len(trimmedUsername) > 20 {
		return fmt.Errorf("username must be no more than 20 characters long")
	}

	startsWithLetter, _ := regexp.MatchString(`^[a-zA-Z]`, trimmedUsername)
	if !startsWithLetter {
		return fmt.Errorf("username must start with a letter")
	}

	validPattern, _ := regexp.MatchString(`^[a-zA-Z][a-zA-Z0-9_]*$`, trimmedUsername)
	if !validPattern {
		return fmt.Errorf("username can only contain letters, numbers, and underscores")
	}

	reserved := []string{"admin", "root", "api", "www", "mail", "ftp", "test", "demo", "user", "guest", "null", "undefined"}
	for _, reservedWord := range reserved {
		if strings.EqualFold(trimmedUsername, reservedWord) {
			return fmt.Errorf("this username is reserved and cannot be used")
		}
	}

	return nil
}

func (ac *AuthController) Register(c *gin.Context) {
	var input struct {
		Username     string `json:"username" binding:"required"`
		Email        string `json:"email" binding:"required,email"`
		Password     string `json:"password" binding:"required,min=6"`
		UserType     string `json:"userType" binding:"required,oneof=user business"`
		FirstName    string `json:"firstName"`
		LastName     string `json:"lastName"`
		Gender       string `json:"gender"`
		Birthday     string `json:"birthday"`
		BusinessName string `json:"businessName"`
		Industry     string `json:"industry"`
		Phone        string `json:"phone"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if err := validateUsernamePattern(input.Username); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	// Individual accounts need a real name, businesses a business name.
	if input.UserType == models.AccountTypeIndividual && (input.FirstName == "" || input.LastName == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "First and last name are required", "success": false})
		return
	}
	if input.UserType == models.AccountTypeBusiness && input.BusinessName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Business name is required", "success": false})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password", "success": false})
		return
	}

	var birthday *time.Time
	if input.Birthday != "" {
		if parsed, err := time.Parse("2006-01-02", input.Birthday); err == nil {
			birthday = &parsed
		}
	}

	var phone *string
	if input.Phone != "" {
		phone = &input.Phone
	}

	user := models.User{
		Username:     strings.ToLower(strings.TrimSpace(input.Username)),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Password:     string(hashedPassword),
		UserType:     input.UserType,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Gender:       input.Gender,
		Birthday:     birthday,
		BusinessName: input.BusinessName,
		Industry:     input.Industry,
		Phone:        phone,
		IsActive:     true,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
			"userType": user.UserType,
		},
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", strings.ToLower(input.Email)).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "success": false})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "success": false})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated", "success": false})
		return
	}

	accessToken, err := utils.GenerateAccessToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token", "success": false})
		return
	}

	refreshToken := models.RefreshToken{
		UserID:         user.ID,
		Token:          utils.GenerateRefreshToken(),
		ExpirationDate: time.Now().Add(utils.RefreshTokenTTL),
	}
	if err := ac.DB.Create(&refreshToken).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create refresh token", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"token":        accessToken,
		"refreshToken": refreshToken.Token,
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
			"userType": user.UserType,
			"avatar":   user.Avatar,
		},
	})
}

func (ac *AuthController) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var stored models.RefreshToken
	if err := ac.DB.Where("token = ?", input.RefreshToken).First(&stored).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token", "success": false})
		return
	}

	if time.Now().After(stored.ExpirationDate) {
		ac.DB.Delete(&stored)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expired", "success": false})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, stored.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found", "success": false})
		return
	}

	accessToken, err := utils.GenerateAccessToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": accessToken})
}

func (ac *AuthController) Logout(c *gin.Context) {
	currentUser := utils.GetUser(c)

	ac.DB.Where("user_id = ?", currentUser.UserID).Delete(&models.RefreshToken{})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}
