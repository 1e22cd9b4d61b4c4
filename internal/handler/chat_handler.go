package handler

import (
	"errors"
	"net/http"
	"time"

	"ganeshai/internal/domain"
	"ganeshai/internal/middleware"
	"ganeshai/internal/repository"
	"ganeshai/internal/responder"
	"ganeshai/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type ChatHandler struct {
	accounts  *service.AccountService
	ledger    *service.LedgerService
	responder *responder.Responder
	userRepo  *repository.UserRepository
}

func NewChatHandler(accounts *service.AccountService, ledger *service.LedgerService, rsp *responder.Responder, userRepo *repository.UserRepository) *ChatHandler {
	return &ChatHandler{accounts: accounts, ledger: ledger, responder: rsp, userRepo: userRepo}
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// Chat handles an authenticated exchange: generate a reply, then record the
// exchange and its reward atomically. A reply is always produced; if the
// credit fails the reply still goes out flagged as reward pending.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	reply := h.responder.Generate(c.Request.Context(), req.Message, responder.Context{
		IsPremium: u.PremiumActive(time.Now()),
		Platform:  domain.PlatformWeb,
	})

	rec, balance, err := h.ledger.CreditChatReward(u, req.Message, reply.Text, reply.ModelTag, domain.PlatformWeb)
	if err != nil {
		if errors.Is(err, service.ErrPersistence) {
			// Reply delivered, reward pending; the client may resubmit.
			log.WithError(err).WithField("user_id", u.ID).Error("chat reward credit failed")
			c.JSON(http.StatusOK, gin.H{
				"response":       reply.Text,
				"model":          reply.ModelTag,
				"reward_pending": true,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "chat failed"})
		return
	}
	h.accounts.TouchLastActive(u.ID)

	c.JSON(http.StatusOK, gin.H{
		"response": reply.Text,
		"model":    reply.ModelTag,
		"earned":   rec.Earned,
		"balance":  balance,
	})
}

// QuickChat is the public endpoint on the landing page: a reply with no
// account and no reward.
func (h *ChatHandler) QuickChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	reply := h.responder.Generate(c.Request.Context(), req.Message, responder.Context{
		Platform: domain.PlatformWeb,
	})
	c.JSON(http.StatusOK, gin.H{
		"response": reply.Text,
		"model":    reply.ModelTag,
	})
}
