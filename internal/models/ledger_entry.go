package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry records one credit to a user's balance. Entries are append-only:
// nothing in the codebase updates or deletes them after creation.
type LedgerEntry struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"amount"`
	Category    string          `gorm:"size:30;not null;index" json:"category"` // WELCOME_BONUS, REFERRAL_BONUS, VISIT_BONUS, CHAT_REWARD
	Description string          `gorm:"size:255" json:"description"`
	Reference   *string         `gorm:"uniqueIndex;size:64" json:"reference,omitempty"` // idempotency key, e.g. referral:<referred user id>
	CreatedAt   time.Time       `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (LedgerEntry) TableName() string { return "ledger_entries" }
