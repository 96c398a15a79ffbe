package dto

import (
	"time"

	"github.com/emberwall/emberwall-backend/internal/models"
)

type CreateMessageRequest struct {
	Nickname string `json:"nickname"`
	Message  string `json:"message"`
}

// MessageView is the public shape of a message. The identity hash and raw
// address never appear here.
type MessageView struct {
	ID              string    `json:"id"`
	Nickname        string    `json:"nickname"`
	Message         string    `json:"message"`
	Country         string    `json:"country"`
	CountryName     string    `json:"countryName"`
	CreatedAt       time.Time `json:"createdAt"`
	ExpiresAt       time.Time `json:"expiresAt"`
	TimeRemainingMs int64     `json:"timeRemainingMs"`
	IsHighlighted   bool      `json:"isHighlighted"`
	ReportCount     int       `json:"reportCount"`
}

// NewMessageView formats a message for the API, clamping the remaining
// lifetime at zero.
func NewMessageView(m *models.Message, now time.Time) MessageView {
	remaining := m.ExpiresAt.Sub(now).Milliseconds()
	if remaining < 0 {
		remaining = 0
	}
	return MessageView{
		ID:              m.ID.String(),
		Nickname:        m.Nickname,
		Message:         m.Body,
		Country:         m.Country,
		CountryName:     m.CountryName,
		CreatedAt:       m.CreatedAt.UTC(),
		ExpiresAt:       m.ExpiresAt.UTC(),
		TimeRemainingMs: remaining,
		IsHighlighted:   m.IsHighlighted,
		ReportCount:     m.ReportCount,
	}
}
