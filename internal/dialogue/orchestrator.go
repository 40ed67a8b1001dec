// Package dialogue drives the order-taking conversation: deciding when to
// escalate to the kitchen, when to answer from the FAQ, when to call the
// completion provider, and how to collect the client details one question at
// a time.
package dialogue

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"comanda/internal/config"
	"comanda/internal/extract"
	"comanda/internal/faq"
	"comanda/internal/llm"
	"comanda/internal/menu"
	"comanda/internal/models"
	"comanda/internal/monitoring"
	"comanda/internal/orders"
	"comanda/internal/pending"
)

// historyWindow is how many recent turns the completion provider sees.
const historyWindow = 12

// closingIntents end the browsing phase and start slot filling.
var closingIntents = []string{
	"eso sería todo", "eso seria todo", "nada más", "nada mas",
	"listo", "confirmar", "confirmo",
	"that's all", "thats all", "nothing else", "done", "confirm",
}

var digitRun = regexp.MustCompile(`\d+`)
var nonDigit = regexp.MustCompile(`\D`)

// Orchestrator sequences a conversation turn through decision draining,
// escalation, FAQ lookup, completion, extraction and slot filling.
type Orchestrator struct {
	cfg      config.Config
	catalog  *menu.Catalog
	faqs     *faq.Matcher
	ledger   *pending.Ledger
	queue    *orders.Queue
	provider llm.Provider
	monitor  *monitoring.Monitor
}

// NewOrchestrator wires the dialogue engine.
func NewOrchestrator(cfg config.Config, catalog *menu.Catalog, faqs *faq.Matcher,
	ledger *pending.Ledger, queue *orders.Queue, provider llm.Provider,
	monitor *monitoring.Monitor) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		catalog:  catalog,
		faqs:     faqs,
		ledger:   ledger,
		queue:    queue,
		provider: provider,
		monitor:  monitor,
	}
}

// HandleTurn processes one user message and returns the assistant turns it
// produced, already appended to the conversation. A completion-provider
// failure is returned to the caller: the turn fails visibly.
func (o *Orchestrator) HandleTurn(ctx context.Context, conv *models.Conversation, message string) ([]string, error) {
	replies := o.drainDecisions(conv)

	msg := strings.TrimSpace(message)
	if msg == "" {
		return replies, nil
	}
	conv.Append(models.RoleUser, msg)
	o.monitor.RecordTurn()
	if conv.Phase == models.PhaseIdle {
		conv.Phase = models.PhaseBrowsing
	}

	lang := o.cfg.Language
	menuItems, err := o.catalog.ListMenu()
	if err != nil {
		return replies, err
	}

	say := func(text string) {
		conv.Append(models.RoleAssistant, text)
		replies = append(replies, text)
	}

	// Slot filling captures the raw message; no LLM round-trip.
	if conv.Phase == models.PhaseCollectingInfo {
		o.captureSlot(conv, msg, lang, say)
		return replies, nil
	}

	if conv.Phase == models.PhaseAwaitingMore && hasClosingIntent(msg) {
		say(collectIntro(lang))
		o.askNext(conv, lang, say)
		return replies, nil
	}

	ix := menu.BuildAliasIndex(menuItems)
	switch {
	case ShouldEscalate(msg, ix):
		ttl := time.Duration(o.cfg.PendingTTLSec) * time.Second
		if _, err := o.ledger.Create(conv.ID, msg, lang, ttl); err != nil {
			return replies, err
		}
		o.monitor.RecordEscalation()
		say(escalationAck(lang))
	default:
		if answer, ok := o.faqs.Match(msg, lang, nil); ok {
			o.monitor.RecordFAQHit()
			say(answer)
			break
		}
		system := SystemPrompt(o.cfg, menu.FormatForPrompt(menuItems))
		reply, err := o.provider.Complete(ctx, system, lastTurns(conv.Turns, historyWindow))
		o.monitor.RecordLLMCall(err)
		if err != nil {
			return replies, fmt.Errorf("completion failed: %w", err)
		}
		say(reply)
	}

	// Re-read the whole conversation for order items and client details.
	conv.Client.Merge(extract.ClientInfo(conv.Turns, lang))
	conv.Items = extract.Items(conv.Turns, menuItems, lang)

	if len(conv.Items) > 0 && conv.Phase == models.PhaseBrowsing && !conv.AskedMore {
		say(askMore(lang))
		conv.Phase = models.PhaseAwaitingMore
		conv.AskedMore = true
	}
	return replies, nil
}

// captureSlot stores the raw message as the value of the field being asked
// for and either asks the next question or invites confirmation.
func (o *Orchestrator) captureSlot(conv *models.Conversation, msg, lang string, say func(string)) {
	if v := normalizeSlot(conv.Field, msg); v != "" {
		conv.Client.SetField(conv.Field, v)
	}
	o.askNext(conv, lang, say)
}

// askNext asks for the first missing field, or moves to ReadyToConfirm when
// nothing is missing. The confirmation prompt is emitted at most once.
func (o *Orchestrator) askNext(conv *models.Conversation, lang string, say func(string)) {
	missing := MissingRequired(&conv.Client)
	if len(missing) == 0 {
		conv.Phase = models.PhaseReadyToConfirm
		conv.Field = ""
		if !conv.PromptedConfirm {
			say(confirmPrompt(lang))
			conv.PromptedConfirm = true
		}
		return
	}
	conv.Phase = models.PhaseCollectingInfo
	conv.Field = missing[0]
	say(QuestionFor(missing[0], lang))
}

// drainDecisions narrates resolved kitchen decisions into the conversation,
// each exactly once.
func (o *Orchestrator) drainDecisions(conv *models.Conversation) []string {
	if err := o.ledger.AutoApproveExpired(); err != nil {
		return nil
	}
	decisions, err := o.ledger.FetchUnnotifiedFor(conv.ID)
	if err != nil {
		return nil
	}
	var replies []string
	for _, p := range decisions {
		text := NarrateDecision(p)
		conv.Append(models.RoleAssistant, text)
		replies = append(replies, text)
		if err := o.ledger.MarkNotified(p.ID); err != nil {
			break
		}
	}
	return replies
}

// NotReadyError reports why an order cannot be confirmed yet.
type NotReadyError struct {
	Missing []string
	NoItems bool
}

func (e *NotReadyError) Error() string {
	if e.NoItems && len(e.Missing) == 0 {
		return "cannot confirm: no items detected"
	}
	return "cannot confirm: missing " + strings.Join(e.Missing, ", ")
}

// Confirm creates the order once every required field and at least one item
// are present, and closes the dialogue.
func (o *Orchestrator) Confirm(conv *models.Conversation) (*models.Order, error) {
	missing := MissingRequired(&conv.Client)
	if len(missing) > 0 || len(conv.Items) == 0 {
		return nil, &NotReadyError{Missing: missing, NoItems: len(conv.Items) == 0}
	}
	order, err := o.queue.Create(conv.Client, conv.Items, o.cfg.Currency)
	if err != nil {
		return nil, err
	}
	o.monitor.RecordOrderCreated()
	conv.Append(models.RoleAssistant, confirmedMessage(o.cfg.Language))
	conv.Phase = models.PhaseConfirmed
	return order, nil
}

// HasPending reports whether the conversation is waiting on the kitchen,
// sweeping expired questions first.
func (o *Orchestrator) HasPending(conversationID string) bool {
	if err := o.ledger.AutoApproveExpired(); err != nil {
		return false
	}
	waiting, err := o.ledger.HasPendingFor(conversationID)
	if err != nil {
		return false
	}
	return waiting
}

func hasClosingIntent(msg string) bool {
	low := strings.ToLower(msg)
	for _, kw := range closingIntents {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}

// normalizeSlot applies the light per-field normalization for a raw slot
// answer. An unrecognized enum answer yields "" so the question is re-asked.
func normalizeSlot(field, raw string) string {
	v := strings.TrimSpace(raw)
	low := strings.ToLower(v)
	switch field {
	case models.FieldPhone:
		return nonDigit.ReplaceAllString(v, "")
	case models.FieldDeliveryType:
		switch {
		case strings.Contains(low, "deliv"), strings.Contains(low, "domicilio"),
			strings.Contains(low, "entrega"), strings.Contains(low, "env"):
			return models.DeliveryTypeDelivery
		case strings.Contains(low, "pick"), strings.Contains(low, "retir"),
			strings.Contains(low, "recog"):
			return models.DeliveryTypePickup
		}
		return ""
	case models.FieldPaymentMethod:
		switch {
		case strings.Contains(low, "efectivo"), strings.Contains(low, "cash"):
			return "cash"
		case strings.Contains(low, "tarjeta"), strings.Contains(low, "card"):
			return "card"
		case strings.Contains(low, "online"), strings.Contains(low, "transfer"),
			strings.Contains(low, "bank"):
			return "online"
		}
		return ""
	case models.FieldPickupETAMin:
		return digitRun.FindString(v)
	}
	return v
}

// lastTurns returns the most recent n turns.
func lastTurns(turns []models.ConversationTurn, n int) []models.ConversationTurn {
	if len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}
