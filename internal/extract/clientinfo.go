package extract

import (
	"regexp"
	"strings"

	"comanda/internal/models"
)

// Client info patterns. Go's regexp has no lookbehind, so the bare phone hint
// anchors on explicit non-digit boundaries instead.
var (
	namePatES = regexp.MustCompile(`(?i)(?:me\s+llamo|soy|mi\s+nombre\s*(?:es|:))\s*([A-Za-zÁÉÍÓÚÜÑáéíóúüñ][A-Za-zÁÉÍÓÚÜÑáéíóúüñ\s]+)`)
	namePatEN = regexp.MustCompile(`(?i)(?:i\s*am|i'm|my\s+name\s*(?:is|:))\s*([A-Za-z][A-Za-z\s]+)`)

	phonePatLabeled = regexp.MustCompile(`(?i)(?:tel[eé]fono|phone|cel|cell|m[oó]vil|mobile)\s*(?:es|is|:)?\s*(\+?\d[\d\-\s]{6,}\d)`)
	phonePatHint    = regexp.MustCompile(`(?:^|[^\d])(\+?\d[\d\-\s]{6,}\d)(?:[^\d]|$)`)
	phoneStrip      = regexp.MustCompile(`[\s\-]+`)

	addressPatES = regexp.MustCompile(`(?i)direcci[oó]n\s*(?:es|:)?\s*(.+)`)
	addressPatEN = regexp.MustCompile(`(?i)address\s*(?:is|:)?\s*(.+)`)

	minutesPat = regexp.MustCompile(`(?i)(\d{1,3})\s*(?:min|minute|minutes|minutos)`)

	deliveryPatES = regexp.MustCompile(`(?i)(domicilio|delivery|enviar|entrega)`)
	pickupPatES   = regexp.MustCompile(`(?i)(retir|recoger|pickup)`)
	deliveryPatEN = regexp.MustCompile(`(?i)(delivery|deliver)`)
	pickupPatEN   = regexp.MustCompile(`(?i)(pickup|pick up)`)

	paymentCash   = regexp.MustCompile(`(?i)(efectivo|cash)`)
	paymentCard   = regexp.MustCompile(`(?i)(tarjeta|card)`)
	paymentOnline = regexp.MustCompile(`(?i)(online|transfer|transferencia|bank)`)
)

// ClientInfo harvests client fields from the user side of the conversation.
// Results are best effort; callers merge only non-empty values.
func ClientInfo(turns []models.ConversationTurn, lang string) models.ClientInfo {
	text := joinUserTurns(turns, " \n")
	var out models.ClientInfo

	namePat := namePatES
	if lang == "en" {
		namePat = namePatEN
	}
	if m := namePat.FindStringSubmatch(text); m != nil {
		out.Name = strings.TrimSpace(m[1])
	}

	if m := phonePatLabeled.FindStringSubmatch(text); m != nil {
		out.Phone = phoneStrip.ReplaceAllString(m[1], "")
	} else if m := phonePatHint.FindStringSubmatch(text); m != nil {
		out.Phone = phoneStrip.ReplaceAllString(m[1], "")
	}

	deliveryPat, pickupPat := deliveryPatES, pickupPatES
	if lang == "en" {
		deliveryPat, pickupPat = deliveryPatEN, pickupPatEN
	}
	if deliveryPat.MatchString(text) {
		out.DeliveryType = models.DeliveryTypeDelivery
	}
	// Delivery wins ties within a single pass.
	if out.DeliveryType == "" && pickupPat.MatchString(text) {
		out.DeliveryType = models.DeliveryTypePickup
	}

	addressPat := addressPatES
	if lang == "en" {
		addressPat = addressPatEN
	}
	if m := addressPat.FindStringSubmatch(text); m != nil {
		out.Address = strings.TrimSpace(firstSentence(m[1]))
	}

	if m := minutesPat.FindStringSubmatch(text); m != nil {
		out.PickupETAMin = m[1]
	}

	switch {
	case paymentCash.MatchString(text):
		out.PaymentMethod = "cash"
	case paymentCard.MatchString(text):
		out.PaymentMethod = "card"
	case paymentOnline.MatchString(text):
		out.PaymentMethod = "online"
	}
	return out
}

// firstSentence cuts an address capture at the end of its sentence.
func firstSentence(s string) string {
	if i := strings.IndexAny(s, ".\n"); i >= 0 {
		return s[:i]
	}
	return s
}
