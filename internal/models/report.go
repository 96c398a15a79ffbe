package models

import (
	"time"

	"github.com/google/uuid"
)

// Report statuses. Transitions out of pending happen only through the
// token-gated admin console.
const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusDismissed = "dismissed"
)

// Report is a community report against a message. The composite unique index
// is what closes the duplicate-report race: two concurrent submissions from
// the same identity produce exactly one row and one conflict.
//
// Reports deliberately outlive their message (orphaned audit records); the
// message purge loop does not cascade here.
type Report struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MessageID    uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_reports_message_reporter" json:"message_id"`
	ReporterHash string     `gorm:"size:64;not null;uniqueIndex:idx_reports_message_reporter" json:"-"`
	Reason       string     `gorm:"size:200" json:"reason,omitempty"`
	Status       string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	ReviewerNote string     `gorm:"size:500" json:"reviewer_note,omitempty"`
}
