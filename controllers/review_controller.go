package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fit-lynq/api-go/models"
	"github.com/fit-lynq/api-go/services"
	"github.com/fit-lynq/api-go/utils"
)

type ReviewController struct {
	DB     *gorm.DB
	Rating *services.RatingService
}

func NewReviewController(db *gorm.DB, rating *services.RatingService) *ReviewController {
	return &ReviewController{DB: db, Rating: rating}
}

type reviewInput struct {
	Content string         `json:"content" binding:"required"`
	Ratings map[string]int `json:"ratings" binding:"required"`
}

// CreateReview godoc
// @Summary Review a player
// @Router /reviews/{userId} [post]
func (rc *ReviewController) CreateReview(c *gin.Context) {
	rc.createReview(c, false)
}

// CreateBusinessReview godoc
// @Summary Review a business
// @Router /business-reviews/{userId} [post]
func (rc *ReviewController) CreateBusinessReview(c *gin.Context) {
	rc.createReview(c, true)
}

func (rc *ReviewController) createReview(c *gin.Context, requireBusiness bool) {
	currentUser := utils.GetUser(c)
	revieweeID, ok := utils.ParseUintParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "success": false})
		return
	}

	var input reviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content and all ratings are required", "success": false})
		return
	}

	result, err := rc.Rating.SubmitReview(c.Request.Context(), currentUser.UserID, revieweeID, input.Content, input.Ratings, requireBusiness)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error(), "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"review":         result.Review,
		"averageRatings": result.AverageRatings,
	})
}

// RespondToReview godoc
// @Summary Respond to a review of yourself
// @Router /reviews/{reviewId}/respond [put]
func (rc *ReviewController) RespondToReview(c *gin.Context) {
	currentUser := utils.GetUser(c)
	reviewID, ok := utils.ParseUintParam(c, "reviewId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID", "success": false})
		return
	}

	var input struct {
		Response string `json:"response" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	review, err := rc.Rating.RespondToReview(c.Request.Context(), currentUser.UserID, reviewID, input.Response)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error(), "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "review": review})
}

// GetUserReviews godoc
// @Summary List reviews of a user
// @Router /reviews/{userId} [get]
func (rc *ReviewController) GetUserReviews(c *gin.Context) {
	revieweeID, ok := utils.ParseUintParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "success": false})
		return
	}

	reviews, err := rc.Rating.ListReviews(c.Request.Context(), revieweeID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error(), "success": false})
		return
	}

	// Attach reviewer projections for display.
	type reviewView struct {
		models.Review
		ReviewerName   string `json:"reviewerName"`
		ReviewerAvatar string `json:"reviewerAvatar"`
	}
	views := make([]reviewView, 0, len(reviews))
	for _, review := range reviews {
		var reviewer models.User
		rc.DB.Select("username", "avatar").First(&reviewer, review.ReviewerID)
		views = append(views, reviewView{
			Review:         review,
			ReviewerName:   reviewer.Username,
			ReviewerAvatar: reviewer.Avatar,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reviews": views})
}
