package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fit-lynq/api-go/models"
	"github.com/fit-lynq/api-go/services"
	"github.com/fit-lynq/api-go/utils"
)

// FollowController exposes the social graph operations. All graph state
// changes go through the SocialGraphService; the controller only reads.
type FollowController struct {
	DB    *gorm.DB
	Graph *services.SocialGraphService
}

func NewFollowController(db *gorm.DB, graph *services.SocialGraphService) *FollowController {
	return &FollowController{DB: db, Graph: graph}
}

// FollowUser godoc
// @Summary Follow a user
// @Router /users/{userId}/follow [post]
func (fc *FollowController) FollowUser(c *gin.Context) {
	currentUser := utils.GetUser(c)
	targetID, ok := utils.ParseUintParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "success": false})
		return
	}

	result, err := fc.Graph.Follow(c.Request.Context(), currentUser.UserID, targetID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error(), "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"currentUser":  result.Actor,
		"followedUser": result.Target,
	})
}

// UnfollowUser godoc
// @Summary Unfollow a user
// @Router /users/{userId}/unfollow [post]
func (fc *FollowController) UnfollowUser(c *gin.Context) {
	currentUser := utils.GetUser(c)
	targetID, ok := utils.ParseUintParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "success": false})
		return
	}

	result, err := fc.Graph.Unfollow(c.Request.Context(), currentUser.UserID, targetID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error(), "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"currentUser":    result.Actor,
		"unfollowedUser": result.Target,
	})
}

// RemoveFollower godoc
// @Summary Remove one of your followers
// @Router /users/{userId}/remove-follower [post]
func (fc *FollowController) RemoveFollower(c *gin.Context) {
	currentUser := utils.GetUser(c)
	followerID, ok := utils.ParseUintParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "success": false})
		return
	}

	result, err := fc.Graph.RemoveFollower(c.Request.Context(), currentUser.UserID, followerID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error(), "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "currentUser": result.Actor})
}

// BlockUser godoc
// @Summary Block a user
// @Router /block [post]
func (fc *FollowController) BlockUser(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var input struct {
		UserID uint `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	_, err := fc.Graph.Block(c.Request.Context(), currentUser.UserID, input.UserID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error(), "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"blockedUsers": fc.blockedUserList(currentUser.UserID),
	})
}

// UnblockUser godoc
// @Summary Unblock a user
// @Router /unblock [post]
func (fc *FollowController) UnblockUser(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var input struct {
		UserID uint `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	_, err := fc.Graph.Unblock(c.Request.Context(), currentUser.UserID, input.UserID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error(), "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"blockedUsers": fc.blockedUserList(currentUser.UserID),
	})
}

func (fc *FollowController) blockedUserList(userID uint) []gin.H {
	var blocked []struct {
		ID           uint   `json:"id"`
		Username     string `json:"username"`
		Avatar       string `json:"avatar"`
		BusinessName string `json:"businessName"`
	}
	fc.DB.Model(&models.Block{}).
		Select("users.id, users.username, users.avatar, users.business_name").
		Joins("JOIN users ON users.id = blocks.blocked_user_id").
		Where("blocks.blocker_user_id = ?", userID).
		Scan(&blocked)

	list := make([]gin.H, 0, len(blocked))
	for _, b := range blocked {
		list = append(list, gin.H{
			"id":           b.ID,
			"username":     b.Username,
			"avatar":       b.Avatar,
			"businessName": b.BusinessName,
		})
	}
	return list
}

// GetBlockedUsers godoc
// @Summary List blocked users
// @Router /blocked [get]
func (fc *FollowController) GetBlockedUsers(c *gin.Context) {
	currentUser := utils.GetUser(c)
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"blockedUsers": fc.blockedUserList(currentUser.UserID),
	})
}

// GetFollowStatus godoc
// @Summary Check whether the caller follows a user
// @Router /users/{userId}/follow-status [get]
func (fc *FollowController) GetFollowStatus(c *gin.Context) {
	currentUser := utils.GetUser(c)
	targetID, ok := utils.ParseUintParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "success": false})
		return
	}

	var count int64
	fc.DB.Model(&models.Follow{}).
		Where("follower_user_id = ? AND following_user_id = ?", currentUser.UserID, targetID).
		Count(&count)

	c.JSON(http.StatusOK, gin.H{"isFollowing": count > 0})
}

// GetFollowers godoc
// @Summary Get a user's followers
// @Router /profile/{username}/followers [get]
func (fc *FollowController) GetFollowers(c *gin.Context) {
	username := c.Param("username")

	var user models.User
	if err := fc.DB.Where("username = ?", username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "success": false})
		return
	}

	var followers []struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Avatar   string `json:"avatar"`
		Bio      string `json:"bio"`
	}
	fc.DB.Model(&models.Follow{}).
		Select("users.id, users.username, users.avatar, users.bio").
		Joins("JOIN users ON users.id = follows.follower_user_id").
		Where("follows.following_user_id = ?", user.ID).
		Scan(&followers)

	c.JSON(http.StatusOK, gin.H{"success": true, "followers": followers})
}

// GetFollowing godoc
// @Summary Get the users someone follows
// @Router /profile/{username}/following [get]
func (fc *FollowController) GetFollowing(c *gin.Context) {
	username := c.Param("username")

	var user models.User
	if err := fc.DB.Where("username = ?", username).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "success": false})
		return
	}

	var following []struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Avatar   string `json:"avatar"`
		Bio      string `json:"bio"`
	}
	fc.DB.Model(&models.Follow{}).
		Select("users.id, users.username, users.avatar, users.bio").
		Joins("JOIN users ON users.id = follows.following_user_id").
		Where("follows.follower_user_id = ?", user.ID).
		Scan(&following)

	c.JSON(http.StatusOK, gin.H{"success": true, "following": following})
}
