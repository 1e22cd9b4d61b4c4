package handler

import (
	"net/http"
	"time"

	"ganeshai/config"
	"ganeshai/internal/domain"
	"ganeshai/internal/middleware"
	"ganeshai/internal/repository"
	"ganeshai/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type MeHandler struct {
	cfg        *config.Config
	userRepo   *repository.UserRepository
	ledgerRepo *repository.LedgerRepository
	chatRepo   *repository.ChatRepository
	ledger     *service.LedgerService
}

func NewMeHandler(cfg *config.Config, userRepo *repository.UserRepository, ledgerRepo *repository.LedgerRepository, chatRepo *repository.ChatRepository, ledger *service.LedgerService) *MeHandler {
	return &MeHandler{cfg: cfg, userRepo: userRepo, ledgerRepo: ledgerRepo, chatRepo: chatRepo, ledger: ledger}
}

// Dashboard returns the account overview: balances, chat and referral counts,
// recent exchanges. Viewing it earns the small visit credit.
func (h *MeHandler) Dashboard(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if _, err := h.ledger.CreditVisitBonus(u.ID, "Dashboard visit"); err != nil {
		log.WithError(err).WithField("user_id", u.ID).Warn("dashboard visit bonus failed")
	} else {
		// reflect the credit in the response
		if fresh, err := h.userRepo.GetByID(u.ID); err == nil {
			u = fresh
		}
	}

	chatCount, _ := h.chatRepo.CountByUser(u.ID)
	referralCount, _ := h.userRepo.CountReferredBy(u.ReferralCode)
	recent, _ := h.chatRepo.RecentByUser(u.ID, 5)

	c.JSON(http.StatusOK, gin.H{
		"user":           u,
		"chat_count":     chatCount,
		"referral_count": referralCount,
		"recent_chats":   recent,
		"chat_rate":      h.ledger.ChatRewardRate(u, time.Now()),
		"referral_link":  h.cfg.Domain + "/register?ref=" + u.ReferralCode,
	})
}

func (h *MeHandler) Ledger(c *gin.Context) {
	userID := middleware.GetUserID(c)
	entries, err := h.ledgerRepo.ListByUser(userID, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ledger unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *MeHandler) Referrals(c *gin.Context) {
	userID := middleware.GetUserID(c)
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	count, _ := h.userRepo.CountReferredBy(u.ReferralCode)
	earned, _ := h.ledgerRepo.SumByCategory(u.ID, domain.LedgerReferralBonus)

	c.JSON(http.StatusOK, gin.H{
		"referral_code":      u.ReferralCode,
		"referral_link":      h.cfg.Domain + "/register?ref=" + u.ReferralCode,
		"referral_count":     count,
		"referral_earnings":  earned,
		"bonus_per_referral": h.cfg.Rewards.ReferralBonus,
	})
}
