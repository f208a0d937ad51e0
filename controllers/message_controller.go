package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/fit-lynq/api-go/models"
	"github.com/fit-lynq/api-go/services"
	"github.com/fit-lynq/api-go/utils"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type MessageController struct {
	DB  *gorm.DB
	Hub *services.Hub
}

func NewMessageController(db *gorm.DB, hub *services.Hub) *MessageController {
	return &MessageController{DB: db, Hub: hub}
}

// ServeWS godoc
// @Summary Upgrade to a websocket for realtime message delivery
// @Router /ws [get]
func (mc *MessageController) ServeWS(c *gin.Context) {
	currentUser := utils.GetUser(c)

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	mc.Hub.Attach(conn, currentUser.UserID)
}

// SendMessage godoc
// @Summary Send a direct message
// @Router /messages/{userId} [post]
func (mc *MessageController) SendMessage(c *gin.Context) {
	currentUser := utils.GetUser(c)
	recipientID, ok := utils.ParseUintParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "success": false})
		return
	}
	if recipientID == currentUser.UserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot message yourself", "success": false})
		return
	}

	var input struct {
		Content string `json:"content" binding:"required,max=2000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var recipient models.User
	if err := mc.DB.First(&recipient, recipientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "success": false})
		return
	}

	// A block in either direction closes the channel.
	var blocked int64
	mc.DB.Model(&models.Block{}).
		Where("(blocker_user_id = ? AND blocked_user_id = ?) OR (blocker_user_id = ? AND blocked_user_id = ?)",
			currentUser.UserID, recipientID, recipientID, currentUser.UserID).
		Count(&blocked)
	if blocked > 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot message this user", "success": false})
		return
	}

	message := models.Message{
		SenderID:    currentUser.UserID,
		RecipientID: recipientID,
		Content:     input.Content,
	}
	if err := mc.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message", "success": false})
		return
	}

	mc.Hub.Publish(c.Request.Context(), &services.WireMessage{
		ID:          message.ID,
		SenderID:    message.SenderID,
		RecipientID: message.RecipientID,
		Content:     message.Content,
		CreatedAt:   message.CreatedAt,
	})

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": message})
}

// GetConversation godoc
// @Summary Message history with one user
// @Router /messages/{userId} [get]
func (mc *MessageController) GetConversation(c *gin.Context) {
	currentUser := utils.GetUser(c)
	otherID, ok := utils.ParseUintParam(c, "userId")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "success": false})
		return
	}

	page, pageSize, offset := utils.ParsePagination(c)

	var messages []models.Message
	mc.DB.Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		currentUser.UserID, otherID, otherID, currentUser.UserID).
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&messages)

	// Opening a conversation marks the other side's messages read.
	now := time.Now()
	mc.DB.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND read_at IS NULL", otherID, currentUser.UserID).
		Update("read_at", now)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"messages": messages,
		"page":     page,
		"pageSize": pageSize,
	})
}

// GetConversations godoc
// @Summary Conversation list with unread counts
// @Router /messages [get]
func (mc *MessageController) GetConversations(c *gin.Context) {
	currentUser := utils.GetUser(c)

	var partners []struct {
		UserID      uint      `json:"userId"`
		Username    string    `json:"username"`
		Avatar      string    `json:"avatar"`
		LastMessage string    `json:"lastMessage"`
		LastAt      time.Time `json:"lastAt"`
		Unread      int64     `json:"unread"`
	}
	mc.DB.Raw(`
		SELECT u.id AS user_id, u.username, u.avatar,
			m.content AS last_message, m.created_at AS last_at,
			(SELECT COUNT(*) FROM messages
				WHERE sender_id = u.id AND recipient_id = ? AND read_at IS NULL) AS unread
		FROM users u
		JOIN LATERAL (
			SELECT content, created_at FROM messages
			WHERE (sender_id = u.id AND recipient_id = ?)
				OR (sender_id = ? AND recipient_id = u.id)
			ORDER BY created_at DESC LIMIT 1
		) m ON true
		WHERE u.id IN (
			SELECT sender_id FROM messages WHERE recipient_id = ?
			UNION
			SELECT recipient_id FROM messages WHERE sender_id = ?
		)
		ORDER BY m.created_at DESC`,
		currentUser.UserID, currentUser.UserID, currentUser.UserID,
		currentUser.UserID, currentUser.UserID).
		Scan(&partners)

	c.JSON(http.StatusOK, gin.H{"success": true, "conversations": partners})
}
