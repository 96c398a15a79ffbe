package services

import (
	"log/slog"
	"time"

	"github.com/emberwall/emberwall-backend/internal/models"
	"gorm.io/gorm"
)

// StartPurge runs a goroutine that physically deletes messages past their
// expiry. Listing and lookup already filter on expires_at, so nothing
// depends on this running promptly; it only reclaims storage.
func StartPurge(db *gorm.DB, interval time.Duration, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := purgeExpired(db); err != nil {
					slog.Error("message purge failed", "error", err)
				}
			case <-done:
				return
			}
		}
	}()
}

func purgeExpired(db *gorm.DB) error {
	result := db.Where("expires_at <= ?", time.Now().UTC()).Delete(&models.Message{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		slog.Info("expired messages purged", "deleted", result.RowsAffected)
	}
	return nil
}
