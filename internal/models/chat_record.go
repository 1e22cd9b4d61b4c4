package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChatRecord logs one exchange: the user's message, the generated reply and the
// reward it carried. Purely a log; nothing consults it beyond "recent N" views.
type ChatRecord struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	PublicID string `gorm:"uniqueIndex;size:36;not null" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`

	Message  string `gorm:"type:text;not null" json:"message"`
	Response string `gorm:"type:text;not null" json:"response"`
	ModelTag string `gorm:"size:50;not null" json:"model"`

	Earned   decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"earned"`
	Platform string          `gorm:"size:20;not null;index" json:"platform"` // web | telegram

	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (ChatRecord) TableName() string { return "chat_records" }
