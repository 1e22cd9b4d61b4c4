package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"ganeshai/config"
	"ganeshai/internal/domain"
	"ganeshai/internal/models"
	"ganeshai/internal/repository"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameExists = errors.New("username already taken")
	ErrEmailExists    = errors.New("email already registered")
	// ErrInvalidCreds is deliberately generic: it never says whether the
	// handle or the password was wrong.
	ErrInvalidCreds = errors.New("invalid credentials")
)

const referralCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// AccountService owns registration and authentication for both the web and
// Telegram identities. All bonus crediting goes through the ledger service.
type AccountService struct {
	cfg      *config.Config
	db       *gorm.DB
	userRepo *repository.UserRepository
	ledger   *LedgerService
}

func NewAccountService(cfg *config.Config, db *gorm.DB, userRepo *repository.UserRepository, ledger *LedgerService) *AccountService {
	return &AccountService{cfg: cfg, db: db, userRepo: userRepo, ledger: ledger}
}

// Register creates a web account. A supplied referral code that resolves to an
// existing account links the two and pays the referrer once; a code that
// resolves to nothing is silently ignored — registration still succeeds.
func (s *AccountService) Register(username, email, password, referralCodeUsed string) (*models.User, error) {
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.createAccount(&models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}, referralCodeUsed)
}

// RegisterTelegram resolves a Telegram identity, creating the account on first
// contact. It reports whether the account is new so the bot can pick the right
// greeting.
func (s *AccountService) RegisterTelegram(telegramID, username, referralCodeUsed string) (*models.User, bool, error) {
	u, err := s.userRepo.GetByTelegramID(telegramID)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if username == "" {
		username = "user_" + telegramID
	}
	// Telegram usernames can collide with web handles; fall back to the id.
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		username = username + "_" + telegramID
	}
	// Bot accounts never log in with a password.
	hash, err := bcrypt.GenerateFromPassword([]byte("telegram:"+telegramID), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}
	tid := telegramID
	u, err = s.createAccount(&models.User{
		Username:     username,
		Email:        username + "@telegram.local",
		PasswordHash: string(hash),
		TelegramID:   &tid,
	}, referralCodeUsed)
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func (s *AccountService) createAccount(u *models.User, referralCodeUsed string) (*models.User, error) {
	code, err := s.GenerateReferralCode()
	if err != nil {
		return nil, err
	}
	u.Role = domain.RoleUser
	u.ReferralCode = code
	u.Balance = decimal.Zero
	u.TotalEarned = decimal.Zero
	u.LastActiveAt = time.Now()

	var referrer *models.User
	if referralCodeUsed != "" {
		referrer, err = s.userRepo.GetByReferralCode(referralCodeUsed)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			referrer = nil // unknown code: ignored, not an error
		} else if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if referrer != nil {
			ref := referralCodeUsed
			u.ReferredBy = &ref
		}
	}

	// The account row, its welcome bonus and the referrer's payout land
	// together or not at all. A store failure rolls the whole registration
	// back, leaving the handle free for a clean retry.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if s.cfg.Rewards.WelcomeBonus.IsPositive() {
			if _, err := s.ledger.credit(tx, u.ID, s.cfg.Rewards.WelcomeBonus, domain.LedgerWelcomeBonus, "Welcome bonus", nil); err != nil {
				return err
			}
		}
		if referrer != nil {
			if _, err := s.ledger.creditReferralBonus(tx, referrer.ID, u.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Re-read so the returned account reflects the welcome credit.
	return s.userRepo.GetByID(u.ID)
}

// Login checks a handle (username or email) and password. Both failure modes
// return the same error.
func (s *AccountService) Login(handle, password string) (*models.User, error) {
	u, err := s.userRepo.GetByHandle(handle)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCreds
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCreds
	}
	if err := s.userRepo.TouchLastActive(u.ID); err != nil {
		log.WithError(err).Warn("touch last_active failed")
	}
	return u, nil
}

func (s *AccountService) GetByID(userID uint) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

func (s *AccountService) TouchLastActive(userID uint) {
	if err := s.userRepo.TouchLastActive(userID); err != nil {
		log.WithError(err).Warn("touch last_active failed")
	}
}

// GenerateReferralCode draws 8 chars from an unambiguous upper-case alphabet
// and retries until the code is globally unique.
func (s *AccountService) GenerateReferralCode() (string, error) {
	for {
		buf := make([]byte, domain.ReferralCodeLength)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for i, b := range buf {
			buf[i] = referralCodeAlphabet[int(b)%len(referralCodeAlphabet)]
		}
		code := string(buf)
		exists, err := s.userRepo.ReferralCodeExists(code)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		if !exists {
			return code, nil
		}
	}
}
