package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// Quote collection state
	SettingKeyQuotes           = "quotes"
	SettingKeySelectedCategory = "selectedCategory"

	// Session-scoped keys (stored in the session, not the settings table)
	SessionKeyLastQuote = "lastQuote"

	// Quote sync status
	SettingKeyQuoteSyncLastAt      = "quote_sync_last_at"
	SettingKeyQuoteSyncLastStatus  = "quote_sync_last_status"
	SettingKeyQuoteSyncLastMessage = "quote_sync_last_message"
	SettingKeyQuoteSyncMerged      = "quote_sync_merged"
)
