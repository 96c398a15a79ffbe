package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/emberwall/emberwall-backend/internal/config"
	"github.com/emberwall/emberwall-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultListLimit = 100
	maxListLimit     = 200
)

// MessageService owns the message lifecycle and the submit-message pipeline:
// validate, hash identity, resolve geo, rate limit, filter content, persist.
// Content filtering runs only after rate-limit admission so over-quota
// callers learn nothing about the filter.
type MessageService struct {
	db      *gorm.DB
	hasher  *IdentityHasher
	geo     *GeoResolver
	limiter *RateLimiter
	filter  *ContentFilter

	ttl               time.Duration
	nicknameMin       int
	nicknameMax       int
	bodyMax           int
	autoHideThreshold int
}

func NewMessageService(db *gorm.DB, hasher *IdentityHasher, geo *GeoResolver, limiter *RateLimiter, filter *ContentFilter, cfg *config.Config) *MessageService {
	return &MessageService{
		db:                db,
		hasher:            hasher,
		geo:               geo,
		limiter:           limiter,
		filter:            filter,
		ttl:               cfg.MessageTTL,
		nicknameMin:       cfg.NicknameMinLength,
		nicknameMax:       cfg.NicknameMaxLength,
		bodyMax:           cfg.MessageMaxLength,
		autoHideThreshold: cfg.AutoHideThreshold,
	}
}

// Post runs the full submit-message pipeline and persists the message.
func (s *MessageService) Post(ctx context.Context, rawAddr, nickname, body string) (*models.Message, error) {
	nickname = strings.TrimSpace(nickname)
	body = strings.TrimSpace(body)

	if nickname == "" {
		return nil, validationf("nickname is required")
	}
	if n := utf8.RuneCountInString(nickname); n < s.nicknameMin || n > s.nicknameMax {
		return nil, validationf("nickname must be between %d and %d characters", s.nicknameMin, s.nicknameMax)
	}
	if body == "" {
		return nil, validationf("message is required")
	}
	if utf8.RuneCountInString(body) > s.bodyMax {
		return nil, validationf("message must not exceed %d characters", s.bodyMax)
	}

	identity := s.hasher.Hash(rawAddr)

	// Geo failure degrades to the unknown sentinel, never blocks the post.
	geo := s.geo.Resolve(rawAddr)

	if allowed, retryAfter := s.limiter.Allow(ctx, identity, BucketPost); !allowed {
		return nil, &RateLimitError{RetryAfter: retryAfter}
	}

	if s.filter.IsProhibited(nickname) || s.filter.IsProhibited(body) {
		return nil, ErrProhibitedContent
	}
	if s.filter.ExceedsSymbolRatio(body) {
		return nil, ErrTooManySpecialChars
	}

	now := time.Now().UTC()
	msg := &models.Message{
		ID:           uuid.New(),
		Nickname:     nickname,
		Body:         body,
		Country:      geo.Country,
		CountryName:  geo.CountryName,
		IdentityHash: identity,
		CreatedAt:    now,
	}
	msg.ExpiresAt = now.Add(s.ttl + msg.BurnExtension)

	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// List returns visible messages, highlighted first and newest first, plus
// the total visible count. The limit is clamped server-side.
func (s *MessageService) List(ctx context.Context, limit, skip int) ([]models.Message, int64, error) {
	return s.listAt(ctx, limit, skip, time.Now().UTC())
}

func (s *MessageService) listAt(ctx context.Context, limit, skip int, now time.Time) ([]models.Message, int64, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if skip < 0 {
		skip = 0
	}

	visible := s.db.WithContext(ctx).Model(&models.Message{}).
		Where("expires_at > ? AND is_hidden = ? AND is_private = ?", now, false, false)

	var total int64
	if err := visible.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err := visible.
		Order("is_highlighted DESC, created_at DESC").
		Limit(limit).
		Offset(skip).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// GetByID returns a message that is still live. Expired and hidden messages
// are indistinguishable from nonexistent ones.
func (s *MessageService) GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	return s.getByIDAt(ctx, id, time.Now().UTC())
}

func (s *MessageService) getByIDAt(ctx context.Context, id uuid.UUID, now time.Time) (*models.Message, error) {
	var msg models.Message
	err := s.db.WithContext(ctx).
		Where("id = ? AND expires_at > ? AND is_hidden = ?", id, now, false).
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// IncrementReportCount bumps the counter and flips the hidden flag in one
// statement once the threshold is reached. Concurrent reports each land
// exactly once; there is no read-modify-write window.
func (s *MessageService) IncrementReportCount(ctx context.Context, id uuid.UUID) (int, error) {
	var newCount int
	err := s.db.WithContext(ctx).Raw(`
		UPDATE messages
		SET report_count = report_count + 1,
		    is_hidden = (report_count + 1 >= ?) OR is_hidden
		WHERE id = ?
		RETURNING report_count`, s.autoHideThreshold, id).Scan(&newCount).Error
	if err != nil {
		return 0, err
	}
	return newCount, nil
}
