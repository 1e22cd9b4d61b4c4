package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string     `gorm:"size:255" json:"-"`
	TelegramID   *string    `gorm:"uniqueIndex;size:32" json:"-"` // nil for web signups (avoids duplicate '' on unique index)
	Role         string     `gorm:"size:20;not null;index" json:"role"` // USER | ADMIN

	Balance     decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"balance"`
	TotalEarned decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"total_earned"`

	ReferralCode string  `gorm:"uniqueIndex;size:20;not null" json:"referral_code"`
	ReferredBy   *string `gorm:"size:20" json:"referred_by,omitempty"` // referrer's code, set at creation only

	IsPremium      bool       `gorm:"default:false" json:"is_premium"`
	PremiumExpires *time.Time `json:"premium_expires,omitempty"`

	LastActiveAt time.Time `json:"last_active_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// PremiumActive reports whether the premium multiplier applies at t.
// A nil expiry on a premium account means no bound was set.
func (u *User) PremiumActive(t time.Time) bool {
	if !u.IsPremium {
		return false
	}
	return u.PremiumExpires == nil || u.PremiumExpires.After(t)
}
