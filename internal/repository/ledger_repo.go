package repository

import (
	"ganeshai/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) ListByUser(userID uint, limit int) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// SumByUser totals all entries for a user. With the current credit-only scope
// this equals the user's balance; tests assert exactly that.
func (r *LedgerRepository) SumByUser(userID uint) (decimal.Decimal, error) {
	var entries []models.LedgerEntry
	if err := r.db.Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	return sum, nil
}

func (r *LedgerRepository) SumByCategory(userID uint, category string) (decimal.Decimal, error) {
	var entries []models.LedgerEntry
	if err := r.db.Where("user_id = ? AND category = ?", userID, category).Find(&entries).Error; err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	return sum, nil
}

func (r *LedgerRepository) TotalPayouts() (decimal.Decimal, error) {
	var entries []models.LedgerEntry
	if err := r.db.Find(&entries).Error; err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	return sum, nil
}
