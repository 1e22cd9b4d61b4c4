package repository

import (
	"time"

	"ganeshai/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByHandle resolves a login handle that may be either username or email.
func (r *UserRepository) GetByHandle(handle string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("username = ? OR email = ?", handle, handle).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByTelegramID(telegramID string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("telegram_id = ?", telegramID).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByReferralCode(code string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("referral_code = ?", code).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ReferralCodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("referral_code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) CountReferredBy(code string) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("referred_by = ?", code).Count(&count).Error
	return count, err
}

func (r *UserRepository) TouchLastActive(id uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("last_active_at", time.Now()).Error
}

func (r *UserRepository) SetPremium(id uint, expires *time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_premium":      true,
		"premium_expires": expires,
	}).Error
}

func (r *UserRepository) Recent(limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at DESC").Limit(limit).Find(&users).Error
	return users, err
}

func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
