// Package pending implements the ledger of questions escalated to the
// kitchen. Expiry is pull-based: callers run AutoApproveExpired before any
// read that must be current; there is no background timer.
package pending

import (
	"fmt"
	"strings"
	"time"

	"comanda/internal/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// Ledger stores pending questions. The clock is injectable so expiry can be
// exercised with simulated time.
type Ledger struct {
	db  *gorm.DB
	now func() time.Time
}

// NewLedger creates a ledger backed by db using the wall clock.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db, now: time.Now}
}

// WithClock overrides the ledger clock.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// Create inserts a fresh pending question expiring after ttl.
func (l *Ledger) Create(conversationID, question, language string, ttl time.Duration) (*models.PendingQuestion, error) {
	if language == "" {
		language = "es"
	}
	created := l.now()
	p := &models.PendingQuestion{
		ID:             "pend_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8],
		ConversationID: conversationID,
		Question:       question,
		Language:       language,
		CreatedAt:      created,
		ExpiresAt:      created.Add(ttl),
		Status:         string(models.PendingStatusPending),
	}
	if err := l.db.Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create pending question: %w", err)
	}
	return p, nil
}

// ListPending returns all unresolved questions, soonest expiry first, so the
// operator serves the oldest deadline first.
func (l *Ledger) ListPending() ([]models.PendingQuestion, error) {
	var out []models.PendingQuestion
	err := l.db.Where("status = ?", models.PendingStatusPending).
		Order("expires_at ASC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending questions: %w", err)
	}
	return out, nil
}

// Resolve applies a human decision. Re-resolution overwrites: the last human
// action wins, even after a timeout auto-approval. Returning to pending is
// never valid.
func (l *Ledger) Resolve(id, status, answer string) error {
	if !models.ValidResolution(status) {
		return fmt.Errorf("invalid resolution status %q", status)
	}
	res := l.db.Model(&models.PendingQuestion{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "answer": answer})
	if res.Error != nil {
		return fmt.Errorf("failed to resolve pending question: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("pending question %s not found", id)
	}
	return nil
}

// AutoApproveExpired flips every still-pending question past its deadline to
// approved with a canned answer. Idempotent; run before freshness-sensitive
// reads.
func (l *Ledger) AutoApproveExpired() error {
	now := l.now()
	byLanguage := map[string]string{
		"es": "Auto-aprobado por timeout",
		"en": "Auto-approved by timeout",
	}
	for lang, answer := range byLanguage {
		err := l.db.Model(&models.PendingQuestion{}).
			Where("status = ? AND expires_at < ? AND language = ?", models.PendingStatusPending, now, lang).
			Updates(map[string]interface{}{"status": models.PendingStatusApproved, "answer": answer}).Error
		if err != nil {
			return fmt.Errorf("failed to auto-approve expired questions: %w", err)
		}
	}
	// Any other language falls back to the Spanish default.
	err := l.db.Model(&models.PendingQuestion{}).
		Where("status = ? AND expires_at < ?", models.PendingStatusPending, now).
		Updates(map[string]interface{}{"status": models.PendingStatusApproved, "answer": byLanguage["es"]}).Error
	if err != nil {
		return fmt.Errorf("failed to auto-approve expired questions: %w", err)
	}
	return nil
}

// FetchUnnotifiedFor returns resolved questions the conversation has not
// narrated yet, oldest first.
func (l *Ledger) FetchUnnotifiedFor(conversationID string) ([]models.PendingQuestion, error) {
	var out []models.PendingQuestion
	err := l.db.Where("conversation_id = ? AND status <> ? AND notified = ?",
		conversationID, models.PendingStatusPending, false).
		Order("created_at ASC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unnotified decisions: %w", err)
	}
	return out, nil
}

// MarkNotified records that a decision was surfaced. Idempotent.
func (l *Ledger) MarkNotified(id string) error {
	return l.db.Model(&models.PendingQuestion{}).Where("id = ?", id).
		Update("notified", true).Error
}

// HasPendingFor reports whether a conversation is waiting on the kitchen.
func (l *Ledger) HasPendingFor(conversationID string) (bool, error) {
	var n int
	err := l.db.Model(&models.PendingQuestion{}).
		Where("conversation_id = ? AND status = ?", conversationID, models.PendingStatusPending).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to count pending questions: %w", err)
	}
	return n > 0, nil
}
