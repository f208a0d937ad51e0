package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fit-lynq/api-go/models"
	"github.com/fit-lynq/api-go/utils"
)

type ProfileController struct {
	DB *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

// GetProfile godoc
// @Summary Get a user's public profile
// @Router /profile/{username} [get]
func (pc *ProfileController) GetProfile(c *gin.Context) {
	currentUser := utils.GetUser(c)
	username := c.Param("username")

	var user models.User
	if err := pc.DB.Where("username = ?", username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "success": false})
		return
	}

	// A profile is invisible to anyone its owner has blocked.
	var blockedCount int64
	pc.DB.Model(&models.Block{}).
		Where("blocker_user_id = ? AND blocked_user_id = ?", user.ID, currentUser.UserID).
		Count(&blockedCount)
	if blockedCount > 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "success": false})
		return
	}

	var isFollowing bool
	if currentUser.UserID != user.ID {
		var count int64
		pc.DB.Model(&models.Follow{}).
			Where("follower_user_id = ? AND following_user_id = ?", currentUser.UserID, user.ID).
			Count(&count)
		isFollowing = count > 0
	}

	var postsCount int64
	pc.DB.Model(&models.Post{}).Where("author_id = ?", user.ID).Count(&postsCount)

	data := gin.H{
		"id":             user.ID,
		"username":       user.Username,
		"userType":       user.UserType,
		"bio":            user.Bio,
		"avatar":         user.Avatar,
		"isVerified":     user.IsVerified,
		"followersCount": user.FollowersCount,
		"followingCount": user.FollowingCount,
		"postsCount":     postsCount,
		"isOwnProfile":   currentUser.UserID == user.ID,
		"isFollowing":    isFollowing,
		"createdAt":      user.CreatedAt,
	}
	if user.IsBusiness() {
		data["businessName"] = user.BusinessName
		data["industry"] = user.Industry
		data["website"] = user.Website
		data["averageFacilityRatings"] = user.AverageFacilityRatings
	} else {
		data["firstName"] = user.FirstName
		data["lastName"] = user.LastName
		data["averageRatings"] = user.AverageRatings
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// UpdateProfile godoc
// @Summary Update your own profile
// @Router /profile [put]
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var input struct {
		Bio          string `json:"bio"`
		Avatar       string `json:"avatar"`
		FirstName    string `json:"firstName"`
		LastName     string `json:"lastName"`
		BusinessName string `json:"businessName"`
		Industry     string `json:"industry"`
		Website      string `json:"website"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var user models.User
	if err := pc.DB.First(&user, currentUser.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "success": false})
		return
	}

	if len(input.Bio) > 150 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bio must be at most 150 characters", "success": false})
		return
	}

	user.Bio = input.Bio
	if input.Avatar != "" {
		user.Avatar = input.Avatar
	}
	if user.IsBusiness() {
		if input.BusinessName != "" {
			user.BusinessName = input.BusinessName
		}
		user.Industry = input.Industry
		user.Website = input.Website
	} else {
		if input.FirstName != "" {
			user.FirstName = input.FirstName
		}
		if input.LastName != "" {
			user.LastName = input.LastName
		}
	}

	if err := pc.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateSettings godoc
// @Summary Update notification and location preferences
// @Router /settings [put]
func (pc *ProfileController) UpdateSettings(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var input struct {
		LocationPrefs *string `json:"locationPrefs"`
		NotifyEmail   *bool   `json:"notifyEmail"`
		NotifyPush    *bool   `json:"notifyPush"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	updates := map[string]interface{}{}
	if input.LocationPrefs != nil {
		updates["location_prefs"] = *input.LocationPrefs
	}
	if input.NotifyEmail != nil {
		updates["notify_email"] = *input.NotifyEmail
	}
	if input.NotifyPush != nil {
		updates["notify_push"] = *input.NotifyPush
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No settings provided", "success": false})
		return
	}

	if err := pc.DB.Model(&models.User{}).Where("id = ?", currentUser.UserID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Settings updated"})
}

// DeactivateAccount godoc
// @Summary Deactivate your account
// @Router /settings/deactivate [post]
func (pc *ProfileController) DeactivateAccount(c *gin.Context) {
	currentUser := utils.GetUser(c)

	if err := pc.DB.Model(&models.User{}).Where("id = ?", currentUser.UserID).
		Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate account", "success": false})
		return
	}
	pc.DB.Where("user_id = ?", currentUser.UserID).Delete(&models.RefreshToken{})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deactivated"})
}

// SearchUsers godoc
// @Summary Search users by username or name
// @Router /search/users [get]
func (pc *ProfileController) SearchUsers(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required", "success": false})
		return
	}

	page, pageSize, offset := utils.ParsePagination(c)

	var users []struct {
		ID           uint   `json:"id"`
		Username     string `json:"username"`
		UserType     string `json:"userType"`
		FirstName    string `json:"firstName"`
		LastName     string `json:"lastName"`
		BusinessName string `json:"businessName"`
		Avatar       string `json:"avatar"`
		IsVerified   bool   `json:"isVerified"`
	}

	searchPattern := "%" + query + "%"
	pc.DB.Table("users").
		Select("id, username, user_type, first_name, last_name, business_name, avatar, is_verified").
		Where("deleted_at IS NULL AND is_active = true").
		Where("username ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ? OR business_name ILIKE ?",
			searchPattern, searchPattern, searchPattern, searchPattern).
		Order("followers_count DESC").
		Offset(offset).
		Limit(pageSize).
		Scan(&users)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"users":    users,
		"query":    query,
		"page":     page,
		"pageSize": pageSize,
	})
}
