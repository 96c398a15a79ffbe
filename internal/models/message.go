package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is an anonymous post. It expires MessageTTL after creation and is
// physically removed by the purge loop; visibility never depends on purge
// timing, only on expires_at.
type Message struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nickname     string    `gorm:"size:20;not null" json:"nickname"`
	Body         string    `gorm:"type:text;not null" json:"message"`
	Country      string    `gorm:"size:2;not null;default:'XX'" json:"country"`
	CountryName  string    `gorm:"size:60;not null;default:'Unknown'" json:"country_name"`
	IdentityHash string    `gorm:"size:64;not null;index" json:"-"`
	CreatedAt    time.Time `gorm:"index:idx_messages_feed,priority:2,sort:desc" json:"created_at"`
	ExpiresAt    time.Time `gorm:"not null;index" json:"expires_at"`

	// BurnExtension is added to the TTL once at creation and never
	// recomputed. No write surface sets it yet; it defaults to zero.
	BurnExtension time.Duration `gorm:"not null;default:0" json:"-"`

	IsHighlighted bool `gorm:"not null;default:false;index:idx_messages_feed,priority:1,sort:desc" json:"is_highlighted"`
	IsPrivate     bool `gorm:"not null;default:false" json:"-"`

	// Moderation
	ReportCount int  `gorm:"not null;default:0" json:"report_count"`
	IsHidden    bool `gorm:"not null;default:false" json:"-"`
}

// Visible reports whether the message may appear in listings at the given
// instant. A message is gone the moment now reaches ExpiresAt.
func (m *Message) Visible(now time.Time) bool {
	return now.Before(m.ExpiresAt) && !m.IsHidden && !m.IsPrivate
}
