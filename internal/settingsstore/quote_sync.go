package settingsstore

import (
	"strconv"
	"time"

	"github.com/mrlokans/quotekeeper/internal/entities"
)

// Sync status values
const (
	QuoteSyncStatusSuccess = "success"
	QuoteSyncStatusFailed  = "failed"
)

// QuoteSyncStatus represents the last quote sync outcome
type QuoteSyncStatus struct {
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
	Status     string     `json:"status,omitempty"`  // "success", "failed", ""
	Message    string     `json:"message,omitempty"` // Error message or stats summary
	Merged     int        `json:"merged"`            // Quotes merged by the last sync
}

// GetQuoteSyncStatus returns the last sync status
func (s *SettingsStore) GetQuoteSyncStatus() QuoteSyncStatus {
	status := QuoteSyncStatus{
		Status:  s.getString(entities.SettingKeyQuoteSyncLastStatus),
		Message: s.getString(entities.SettingKeyQuoteSyncLastMessage),
	}

	if value := s.getString(entities.SettingKeyQuoteSyncLastAt); value != "" {
		if ts, err := time.Parse(time.RFC3339, value); err == nil {
			status.LastSyncAt = &ts
		}
	}

	if value := s.getString(entities.SettingKeyQuoteSyncMerged); value != "" {
		if merged, err := strconv.Atoi(value); err == nil {
			status.Merged = merged
		}
	}

	return status
}

// SetQuoteSyncStatus updates the sync status
func (s *SettingsStore) SetQuoteSyncStatus(status, message string, merged int) error {
	now := time.Now().UTC().Format(time.RFC3339)

	if err := s.db.Set(entities.SettingKeyQuoteSyncLastAt, now); err != nil {
		return err
	}
	if err := s.db.Set(entities.SettingKeyQuoteSyncLastStatus, status); err != nil {
		return err
	}
	if err := s.db.Set(entities.SettingKeyQuoteSyncLastMessage, message); err != nil {
		return err
	}
	return s.db.Set(entities.SettingKeyQuoteSyncMerged, strconv.Itoa(merged))
}
