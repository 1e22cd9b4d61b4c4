package handler

import (
	"net/http"
	"time"

	"ganeshai/internal/repository"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type AdminHandler struct {
	userRepo  *repository.UserRepository
	chatRepo  *repository.ChatRepository
	statsRepo *repository.StatsRepository
}

func NewAdminHandler(userRepo *repository.UserRepository, chatRepo *repository.ChatRepository, statsRepo *repository.StatsRepository) *AdminHandler {
	return &AdminHandler{userRepo: userRepo, chatRepo: chatRepo, statsRepo: statsRepo}
}

// Overview returns the aggregate snapshot plus recent users and chats.
func (h *AdminHandler) Overview(c *gin.Context) {
	stats, err := h.statsRepo.Latest()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}
	recentUsers, _ := h.userRepo.Recent(10)
	recentChats, _ := h.chatRepo.Recent(10)

	c.JSON(http.StatusOK, gin.H{
		"stats":        stats,
		"recent_users": recentUsers,
		"recent_chats": recentChats,
	})
}

type GrantPremiumRequest struct {
	UserID    uint   `json:"user_id" binding:"required"`
	ExpiresAt string `json:"expires_at"` // RFC3339; empty means no bound
}

// GrantPremium flips a user to premium until the given time. The payment flow
// itself lives outside this service; this is the admin-side grant.
func (h *AdminHandler) GrantPremium(c *gin.Context) {
	var req GrantPremiumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var expires *time.Time
	if req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expires_at (use RFC3339)"})
			return
		}
		expires = &t
	}
	if _, err := h.userRepo.GetByID(req.UserID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err := h.userRepo.SetPremium(req.UserID, expires); err != nil {
		log.WithError(err).WithField("user_id", req.UserID).Error("premium grant failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "premium grant failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
