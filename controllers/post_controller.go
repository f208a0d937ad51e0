package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fit-lynq/api-go/models"
	"github.com/fit-lynq/api-go/utils"
)

type PostController struct {
	DB *gorm.DB
}

func NewPostController(db *gorm.DB) *PostController {
	return &PostController{DB: db}
}

type postMediaInput struct {
	URL       string `json:"url" binding:"required"`
	MediaType string `json:"mediaType" binding:"required,oneof=image video"`
}

// CreatePost godoc
// @Summary Create a post
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var input struct {
		Content string           `json:"content" binding:"required,max=500"`
		Media   []postMediaInput `json:"media" binding:"omitempty,max=10,dive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	post := models.Post{
		AuthorID: currentUser.UserID,
		Content:  input.Content,
	}
	for _, m := range input.Media {
		post.Media = append(post.Media, models.PostMedia{URL: m.URL, MediaType: m.MediaType})
	}

	if err := pc.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "post": post})
}

// GetFeed godoc
// @Summary Posts from followed users, newest first
// @Router /feed [get]
func (pc *PostController) GetFeed(c *gin.Context) {
	currentUser := utils.GetUser(c)
	page, pageSize, offset := utils.ParsePagination(c)

	var posts []models.Post
	pc.DB.Preload("Media").
		Where(`author_id IN (
			SELECT following_user_id FROM follows WHERE follower_user_id = ?
		) OR author_id = ?`, currentUser.UserID, currentUser.UserID).
		Where(`author_id NOT IN (
			SELECT blocker_user_id FROM blocks WHERE blocked_user_id = ?
		)`, currentUser.UserID).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&posts)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"posts":    pc.decorate(posts, currentUser.UserID),
		"page":     page,
		"pageSize": pageSize,
	})
}

// GetUserPosts godoc
// @Summary A single user's posts
// @Router /users/{userId}/posts [get]
func (pc *PostController) GetUserPosts(c *gin.Context) {
	currentUser := utils.GetUser(c)
	userID, ok := utils.ParseUintParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "success": false})
		return
	}

	page, pageSize, offset := utils.ParsePagination(c)

	var posts []models.Post
	pc.DB.Preload("Media").
		Where("author_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&posts)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"posts":    pc.decorate(posts, currentUser.UserID),
		"page":     page,
		"pageSize": pageSize,
	})
}

type postView struct {
	models.Post
	LikesCount    int64 `json:"likesCount"`
	CommentsCount int64 `json:"commentsCount"`
	Liked         bool  `json:"liked"`
}

func (pc *PostController) decorate(posts []models.Post, viewerID uint) []postView {
	views := make([]postView, 0, len(posts))
	for _, post := range posts {
		var likes, comments, viewerLike int64
		pc.DB.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes)
		pc.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments)
		pc.DB.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", post.ID, viewerID).Count(&viewerLike)
		views = append(views, postView{
			Post:          post,
			LikesCount:    likes,
			CommentsCount: comments,
			Liked:         viewerLike > 0,
		})
	}
	return views
}

// LikePost godoc
// @Summary Like or unlike a post
// @Router /posts/{id}/like [post]
func (pc *PostController) LikePost(c *gin.Context) {
	currentUser := utils.GetUser(c)
	postID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID", "success": false})
		return
	}

	var post models.Post
	if err := pc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found", "success": false})
		return
	}

	var existingLike models.Like
	result := pc.DB.Where("post_id = ? AND user_id = ?", postID, currentUser.UserID).First(&existingLike)

	if result.Error == gorm.ErrRecordNotFound {
		like := models.Like{
			UserID:    currentUser.UserID,
			PostID:    post.ID,
			CreatedAt: time.Now(),
		}
		if err := pc.DB.Create(&like).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post", "success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"liked": true})
	} else {
		if err := pc.DB.Delete(&existingLike).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike post", "success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"liked": false})
	}
}

// CommentOnPost godoc
// @Summary Comment on a post
// @Router /posts/{id}/comments [post]
func (pc *PostController) CommentOnPost(c *gin.Context) {
	currentUser := utils.GetUser(c)
	postID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID", "success": false})
		return
	}

	var input struct {
		Content string `json:"content" binding:"required,max=200"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var post models.Post
	if err := pc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found", "success": false})
		return
	}

	comment := models.Comment{
		PostID:   post.ID,
		AuthorID: currentUser.UserID,
		Content:  input.Content,
	}
	if err := pc.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "comment": comment})
}

// GetComments godoc
// @Summary List comments on a post
// @Router /posts/{id}/comments [get]
func (pc *PostController) GetComments(c *gin.Context) {
	postID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID", "success": false})
		return
	}

	page, pageSize, offset := utils.ParsePagination(c)

	var comments []struct {
		ID        uint      `json:"id"`
		Content   string    `json:"content"`
		AuthorID  uint      `json:"authorId"`
		Username  string    `json:"username"`
		Avatar    string    `json:"avatar"`
		CreatedAt time.Time `json:"createdAt"`
	}
	pc.DB.Model(&models.Comment{}).
		Select("comments.id, comments.content, comments.author_id, users.username, users.avatar, comments.created_at").
		Joins("JOIN users ON users.id = comments.author_id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Scan(&comments)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"comments": comments,
		"page":     page,
		"pageSize": pageSize,
	})
}

// DeletePost godoc
// @Summary Delete your own post
// @Router /posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	currentUser := utils.GetUser(c)
	postID, ok := utils.ParseUintParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID", "success": false})
		return
	}

	var post models.Post
	if err := pc.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found", "success": false})
		return
	}
	if post.AuthorID != currentUser.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Can only delete your own posts", "success": false})
		return
	}

	if err := pc.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted"})
}
