package service

import (
	"errors"
	"fmt"
	"time"

	"ganeshai/config"
	"ganeshai/internal/domain"
	"ganeshai/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNonPositiveAmount = errors.New("credit amount must be positive")
	ErrUserNotFound      = errors.New("user not found")
	// ErrPersistence marks a store failure; the whole logical operation was
	// rolled back and the caller may retry.
	ErrPersistence = errors.New("persistence failure")
)

// LedgerService is the only writer of balances. Every balance change appends a
// LedgerEntry and bumps the owning user's balance/total_earned in the same
// transaction, so the two can never drift apart.
type LedgerService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewLedgerService(db *gorm.DB, cfg *config.Config) *LedgerService {
	return &LedgerService{db: db, cfg: cfg}
}

// Credit appends a ledger entry and applies it to the user's balance.
func (s *LedgerService) Credit(userID uint, amount decimal.Decimal, category, description string) (*models.LedgerEntry, error) {
	return s.credit(s.db, userID, amount, category, description, nil)
}

// CreditReferralBonus pays the referrer for one referred registration. The
// referred user's id is the idempotency key: retrying a registration that
// already paid out is a no-op, not a second bonus.
func (s *LedgerService) CreditReferralBonus(referrerID, referredUserID uint) (*models.LedgerEntry, error) {
	var entry *models.LedgerEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		entry, err = s.creditReferralBonus(tx, referrerID, referredUserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// creditReferralBonus runs the idempotent payout inside tx so registration can
// compose it with the account insert. An account never refers itself.
func (s *LedgerService) creditReferralBonus(tx *gorm.DB, referrerID, referredUserID uint) (*models.LedgerEntry, error) {
	if referrerID == referredUserID {
		return nil, nil
	}
	ref := fmt.Sprintf("referral:%d", referredUserID)

	var count int64
	if err := tx.Model(&models.LedgerEntry{}).Where("reference = ?", ref).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if count > 0 {
		return nil, nil // already rewarded
	}
	desc := fmt.Sprintf("Referral bonus for user %d", referredUserID)
	return s.credit(tx, referrerID, s.cfg.Rewards.ReferralBonus, domain.LedgerReferralBonus, desc, &ref)
}

// ChatRewardRate returns the per-message rate for a user, applying the premium
// multiplier when the subscription is active at now.
func (s *LedgerService) ChatRewardRate(u *models.User, now time.Time) decimal.Decimal {
	rate := s.cfg.Rewards.ChatPayRate
	if u.PremiumActive(now) {
		rate = rate.Mul(s.cfg.Premium.Multiplier)
	}
	return rate
}

// CreditChatReward writes the chat record and its reward together. Either both
// land or neither does: no orphaned reward, no silently unrewarded exchange.
// It returns the stored record and the user's balance after the credit.
func (s *LedgerService) CreditChatReward(u *models.User, message, response, modelTag, platform string) (*models.ChatRecord, decimal.Decimal, error) {
	rate := s.ChatRewardRate(u, time.Now())

	rec := &models.ChatRecord{
		PublicID: uuid.NewString(),
		UserID:   u.ID,
		Message:  message,
		Response: response,
		ModelTag: modelTag,
		Earned:   rate,
		Platform: platform,
	}

	var balance decimal.Decimal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		desc := "Chat reward (" + platform + ")"
		if _, err := s.credit(tx, u.ID, rate, domain.LedgerChatReward, desc, nil); err != nil {
			return err
		}
		var after models.User
		if err := tx.First(&after, u.ID).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		balance = after.Balance
		return nil
	})
	if err != nil {
		return nil, decimal.Zero, err
	}
	return rec, balance, nil
}

// CreditVisitBonus pays the small per-visit rate (login, dashboard view).
func (s *LedgerService) CreditVisitBonus(userID uint, reason string) (*models.LedgerEntry, error) {
	return s.credit(s.db, userID, s.cfg.Rewards.VisitPayRate, domain.LedgerVisitBonus, reason, nil)
}

// credit performs the paired write inside tx. The balance update is a SQL
// increment, not a read-modify-write, so concurrent credits to the same user
// cannot lose each other.
func (s *LedgerService) credit(tx *gorm.DB, userID uint, amount decimal.Decimal, category, description string, reference *string) (*models.LedgerEntry, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	entry := &models.LedgerEntry{
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: description,
		Reference:   reference,
	}

	run := func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		res := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"balance":      gorm.Expr("balance + ?", amount),
			"total_earned": gorm.Expr("total_earned + ?", amount),
		})
		if res.Error != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	}

	// gorm nests via savepoint when tx is already a transaction handle.
	if err := tx.Transaction(run); err != nil {
		return nil, err
	}
	return entry, nil
}
