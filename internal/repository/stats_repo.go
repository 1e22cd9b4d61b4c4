package repository

import (
	"errors"

	"ganeshai/internal/models"

	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Latest() (*models.SystemStat, error) {
	var s models.SystemStat
	err := r.db.Order("id DESC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.SystemStat{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert keeps a single snapshot row, creating it on first run.
func (r *StatsRepository) Upsert(s *models.SystemStat) error {
	var existing models.SystemStat
	err := r.db.Order("id DESC").First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(s).Error
	}
	if err != nil {
		return err
	}
	return r.db.Model(&existing).Updates(map[string]interface{}{
		"total_users":   s.TotalUsers,
		"total_chats":   s.TotalChats,
		"total_payouts": s.TotalPayouts,
	}).Error
}
