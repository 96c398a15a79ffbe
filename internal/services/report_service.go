package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/emberwall/emberwall-backend/internal/config"
	"github.com/emberwall/emberwall-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportService owns the submit-report pipeline and the admin review
// surface. Duplicate submissions are resolved by the unique
// (message_id, reporter_hash) index, not by a prior existence check, so a
// concurrent pair yields exactly one stored report and one conflict.
type ReportService struct {
	db       *gorm.DB
	hasher   *IdentityHasher
	limiter  *RateLimiter
	messages *MessageService

	reasonMax int
}

func NewReportService(db *gorm.DB, hasher *IdentityHasher, limiter *RateLimiter, messages *MessageService, cfg *config.Config) *ReportService {
	return &ReportService{
		db:        db,
		hasher:    hasher,
		limiter:   limiter,
		messages:  messages,
		reasonMax: cfg.ReasonMaxLength,
	}
}

// Submit runs the full submit-report pipeline: validate, confirm the target
// is still visible, hash identity, rate limit, insert, then bump the
// message's counter.
func (s *ReportService) Submit(ctx context.Context, rawAddr, messageID, reason string) error {
	id, err := uuid.Parse(messageID)
	if err != nil {
		return validationf("invalid message ID")
	}
	reason = strings.TrimSpace(reason)
	if utf8.RuneCountInString(reason) > s.reasonMax {
		return validationf("reason must not exceed %d characters", s.reasonMax)
	}

	if _, err := s.messages.GetByID(ctx, id); err != nil {
		return err
	}

	identity := s.hasher.Hash(rawAddr)

	if allowed, retryAfter := s.limiter.Allow(ctx, identity, BucketReport); !allowed {
		return &RateLimitError{RetryAfter: retryAfter}
	}

	report := &models.Report{
		ID:           uuid.New(),
		MessageID:    id,
		ReporterHash: identity,
		Reason:       reason,
		Status:       models.ReportStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateReport
		}
		return err
	}

	// The report is already recorded; a failed increment leaves the message
	// under-counted rather than rolling back the report.
	if _, err := s.messages.IncrementReportCount(ctx, id); err != nil {
		slog.Error("report count increment failed", "message_id", id, "error", err)
	}
	return nil
}

// List returns reports for the admin console, newest first, optionally
// filtered by status.
func (s *ReportService) List(ctx context.Context, status string, limit, offset int) ([]models.Report, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := s.db.WithContext(ctx).Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reports []models.Report
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

// Review moves a pending report to reviewed or dismissed and stamps the
// review time.
func (s *ReportService) Review(ctx context.Context, reportID uuid.UUID, status, note string) error {
	if status != models.ReportStatusReviewed && status != models.ReportStatusDismissed {
		return validationf("status must be %q or %q", models.ReportStatusReviewed, models.ReportStatusDismissed)
	}

	now := time.Now().UTC()
	result := s.db.WithContext(ctx).Model(&models.Report{}).
		Where("id = ?", reportID).
		Updates(map[string]interface{}{
			"status":        status,
			"reviewer_note": note,
			"reviewed_at":   now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}
