package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemStat is an advisory aggregate snapshot recomputed by the stats job.
// It may be stale; nothing in the reward path reads it.
type SystemStat struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	TotalUsers   int64           `gorm:"not null;default:0" json:"total_users"`
	TotalChats   int64           `gorm:"not null;default:0" json:"total_chats"`
	TotalPayouts decimal.Decimal `gorm:"type:decimal(16,4);not null" json:"total_payouts"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (SystemStat) TableName() string { return "system_stats" }
