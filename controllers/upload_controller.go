package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fit-lynq/api-go/config"
	"github.com/fit-lynq/api-go/models"
	"github.com/fit-lynq/api-go/utils"
)

type UploadController struct {
	DB       *gorm.DB
	R2Client *s3.Client
	R2Config *config.R2Config
}

func NewUploadController(db *gorm.DB) *UploadController {
	r2Config := config.GetR2Config()

	r2Client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			r2Config.AccessKeyID,
			r2Config.SecretAccessKey,
			"",
		),
		Region: r2Config.Region,
	})

	return &UploadController{
		DB:       db,
		R2Client: r2Client,
		R2Config: r2Config,
	}
}

var uploadContentTypes = map[string][]string{
	"image": {"image/jpeg", "image/jpg", "image/png", "image/webp", "image/heic"},
	"video": {"video/mp4", "video/quicktime", "video/webm"},
}

var uploadSizeLimits = map[string]int64{
	"image": 10 * 1024 * 1024,
	"video": 100 * 1024 * 1024,
}

func validUploadType(contentType, mediaType string) bool {
	for _, allowed := range uploadContentTypes[mediaType] {
		if contentType == allowed {
			return true
		}
	}
	return false
}

// GetMediaUploadURL godoc
// @Summary Presigned URL for post media upload
// @Router /uploads/media [post]
func (uc *UploadController) GetMediaUploadURL(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var input struct {
		FileName    string `json:"fileName" binding:"required"`
		ContentType string `json:"contentType" binding:"required"`
		FileSize    int64  `json:"fileSize" binding:"required,gt=0"`
		MediaType   string `json:"mediaType" binding:"required,oneof=image video"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if !validUploadType(input.ContentType, input.MediaType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type for media type", "success": false})
		return
	}
	if input.FileSize > uploadSizeLimits[input.MediaType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds limit", "success": false})
		return
	}

	key := fmt.Sprintf("uploads/%s/%d/%d_%s%s",
		input.MediaType, currentUser.UserID, time.Now().Unix(), uuid.New().String(), filepath.Ext(input.FileName))

	uploadURL, err := uc.presignPut(c, key, input.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"uploadUrl": uploadURL,
		"fileUrl":   fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key),
		"key":       key,
		"expiresIn": 3600,
	})
}

// GetAvatarUploadURL godoc
// @Summary Presigned URL for avatar upload
// @Router /uploads/avatar [post]
func (uc *UploadController) GetAvatarUploadURL(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var input struct {
		FileName    string `json:"fileName" binding:"required"`
		ContentType string `json:"contentType" binding:"required"`
		FileSize    int64  `json:"fileSize" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if !validUploadType(input.ContentType, "image") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar must be an image", "success": false})
		return
	}
	if input.FileSize > 5*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar must be at most 5MB", "success": false})
		return
	}

	key := fmt.Sprintf("users/%d/avatar/%d%s",
		currentUser.UserID, time.Now().Unix(), filepath.Ext(input.FileName))

	uploadURL, err := uc.presignPut(c, key, input.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload URL", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"uploadUrl": uploadURL,
		"fileUrl":   fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key),
		"key":       key,
		"expiresIn": 1800,
	})
}

// ConfirmAvatarUpload godoc
// @Summary Verify the uploaded avatar and point the profile at it
// @Router /uploads/avatar/confirm [post]
func (uc *UploadController) ConfirmAvatarUpload(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var input struct {
		Key string `json:"key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	// Keys embed the owner's ID; refuse to adopt another user's file.
	if !utils.KeyBelongsToUser(input.Key, currentUser.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied", "success": false})
		return
	}

	_, err := uc.R2Client.HeadObject(c.Request.Context(), &s3.HeadObjectInput{
		Bucket: aws.String(uc.R2Config.BucketName),
		Key:    aws.String(input.Key),
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found in storage", "success": false})
		return
	}

	fileURL := fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, input.Key)
	if err := uc.DB.Model(&models.User{}).
		Where("id = ?", currentUser.UserID).
		Update("avatar", fileURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update avatar", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "avatar": fileURL})
}

// DeleteUpload godoc
// @Summary Delete one of your uploaded files
// @Router /uploads/file/{key} [delete]
func (uc *UploadController) DeleteUpload(c *gin.Context) {
	currentUser := utils.GetUser(c)
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File key is required", "success": false})
		return
	}

	if !utils.KeyBelongsToUser(key, currentUser.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied", "success": false})
		return
	}

	_, err := uc.R2Client.DeleteObject(c.Request.Context(), &s3.DeleteObjectInput{
		Bucket: aws.String(uc.R2Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File deleted"})
}

func (uc *UploadController) presignPut(c *gin.Context, key, contentType string) (string, error) {
	presigner := s3.NewPresignClient(uc.R2Client)
	req, err := presigner.PresignPutObject(c.Request.Context(), &s3.PutObjectInput{
		Bucket:      aws.String(uc.R2Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
