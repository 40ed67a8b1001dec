package models

import "time"

// PendingQuestion represents a customer request suspended until the kitchen
// decides on it. A question is created pending, resolved exactly one way
// (human decision or timeout auto-approval, last write wins), and surfaced to
// its conversation exactly once via the notified flag.
type PendingQuestion struct {
	ID             string    `gorm:"primary_key" json:"id"`
	ConversationID string    `gorm:"index" json:"conversation_id"`
	Question       string    `gorm:"not null" json:"question"`
	Language       string    `gorm:"not null" json:"language"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	Status         string    `gorm:"not null;default:'pending'" json:"status"`
	Answer         string    `json:"answer"`
	Notified       bool      `gorm:"not null;default:false" json:"notified"`
}

// PendingStatus represents the lifecycle states of a pending question.
type PendingStatus string

const (
	PendingStatusPending  PendingStatus = "pending"
	PendingStatusApproved PendingStatus = "approved"
	PendingStatusDenied   PendingStatus = "denied"
	PendingStatusCustom   PendingStatus = "custom"
)

// ValidResolution reports whether s is a terminal pending-question status.
// Re-entering "pending" is never valid.
func ValidResolution(s string) bool {
	switch PendingStatus(s) {
	case PendingStatusApproved, PendingStatusDenied, PendingStatusCustom:
		return true
	}
	return false
}
