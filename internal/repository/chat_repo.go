package repository

import (
	"ganeshai/internal/models"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) RecentByUser(userID uint, limit int) ([]models.ChatRecord, error) {
	var records []models.ChatRecord
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}

func (r *ChatRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ChatRecord{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *ChatRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.ChatRecord{}).Count(&count).Error
	return count, err
}

// Recent returns the latest exchanges across all users with the owning user
// preloaded, for the admin overview.
func (r *ChatRepository) Recent(limit int) ([]models.ChatRecord, error) {
	var records []models.ChatRecord
	err := r.db.Preload("User").Order("created_at DESC").Limit(limit).Find(&records).Error
	return records, err
}
