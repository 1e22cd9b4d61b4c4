package handler

import (
	"errors"
	"net/http"

	"ganeshai/config"
	"ganeshai/internal/auth"
	"ganeshai/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type AuthHandler struct {
	cfg      *config.Config
	accounts *service.AccountService
	ledger   *service.LedgerService
}

func NewAuthHandler(cfg *config.Config, accounts *service.AccountService, ledger *service.LedgerService) *AuthHandler {
	return &AuthHandler{cfg: cfg, accounts: accounts, ledger: ledger}
}

type RegisterRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=64"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	ReferralCode string `json:"referral_code"` // optional: referrer's code
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"` // username or email
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.accounts.Register(req.Username, req.Email, req.Password, req.ReferralCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameExists), errors.Is(err, service.ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			log.WithError(err).WithField("username", req.Username).Error("registration failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}
	access, refresh, err := h.tokens(u.ID, u.Username, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"user":          u,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.accounts.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		log.WithError(err).Error("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	// Small visit credit on each login, as on the dashboard.
	if _, err := h.ledger.CreditVisitBonus(u.ID, "Login visit bonus"); err != nil {
		log.WithError(err).WithField("user_id", u.ID).Warn("login visit bonus failed")
	}
	access, refresh, err := h.tokens(u.ID, u.Username, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":          u,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, err := auth.ParseRefreshToken(&h.cfg.JWT, req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	u, err := h.accounts.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	access, refresh, err := h.tokens(u.ID, u.Username, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (h *AuthHandler) tokens(userID uint, username, role string) (string, string, error) {
	access, err := auth.GenerateAccessToken(&h.cfg.JWT, userID, username, role)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&h.cfg.JWT, userID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
