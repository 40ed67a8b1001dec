package models

import "time"

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn represents a single utterance in a conversation.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Phase represents the dialogue state of a conversation. The phase is a
// tagged value rather than a bag of booleans so that illegal combinations
// (collecting info while awaiting an "anything else?" answer) cannot exist.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseBrowsing       Phase = "browsing"
	PhaseAwaitingMore   Phase = "awaiting_more_confirmation"
	PhaseCollectingInfo Phase = "collecting_info"
	PhaseReadyToConfirm Phase = "ready_to_confirm"
	PhaseConfirmed      Phase = "confirmed"
)

// Conversation represents one customer chat session. It lives in memory only:
// created on first contact, mutated turn by turn, discarded on reset. The
// dialogue orchestrator is the single writer.
type Conversation struct {
	ID    string             `json:"id"`
	Turns []ConversationTurn `json:"turns"`
	Client ClientInfo        `json:"client_info"`
	Items  []OrderDraftItem  `json:"items"`

	Phase Phase `json:"phase"`
	// Field is the client-info field currently being asked for. Meaningful
	// only while Phase is PhaseCollectingInfo.
	Field string `json:"field,omitempty"`

	// AskedMore and PromptedConfirm guard the two prompts that must be
	// emitted at most once per conversation.
	AskedMore       bool `json:"-"`
	PromptedConfirm bool `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// Append adds a turn to the conversation.
func (c *Conversation) Append(role, content string) {
	c.Turns = append(c.Turns, ConversationTurn{Role: role, Content: content})
}

// LastAssistant returns the most recent assistant turn, or "".
func (c *Conversation) LastAssistant() string {
	for i := len(c.Turns) - 1; i >= 0; i-- {
		if c.Turns[i].Role == RoleAssistant {
			return c.Turns[i].Content
		}
	}
	return ""
}

// Client info field names, in no particular order. The asking order is owned
// by the required-fields policy.
const (
	FieldName          = "name"
	FieldPhone         = "phone"
	FieldDeliveryType  = "delivery_type"
	FieldAddress       = "address"
	FieldPickupETAMin  = "pickup_eta_min"
	FieldPaymentMethod = "payment_method"
)

// Delivery types. The empty string means "not stated yet".
const (
	DeliveryTypePickup   = "pickup"
	DeliveryTypeDelivery = "delivery"
)

// ClientInfo holds the client fields collected during a conversation. Values
// are free-form strings; pickup_eta_min holds a decimal number of minutes.
type ClientInfo struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	DeliveryType  string `json:"delivery_type"`
	Address       string `json:"address"`
	PickupETAMin  string `json:"pickup_eta_min"`
	PaymentMethod string `json:"payment_method"`
}

// Field returns the value of the named field, or "" for unknown names.
func (ci *ClientInfo) Field(name string) string {
	switch name {
	case FieldName:
		return ci.Name
	case FieldPhone:
		return ci.Phone
	case FieldDeliveryType:
		return ci.DeliveryType
	case FieldAddress:
		return ci.Address
	case FieldPickupETAMin:
		return ci.PickupETAMin
	case FieldPaymentMethod:
		return ci.PaymentMethod
	}
	return ""
}

// SetField sets the named field. Unknown names are ignored.
func (ci *ClientInfo) SetField(name, value string) {
	switch name {
	case FieldName:
		ci.Name = value
	case FieldPhone:
		ci.Phone = value
	case FieldDeliveryType:
		ci.DeliveryType = value
	case FieldAddress:
		ci.Address = value
	case FieldPickupETAMin:
		ci.PickupETAMin = value
	case FieldPaymentMethod:
		ci.PaymentMethod = value
	}
}

// Merge copies every non-empty field of other into ci. Empty extracted values
// never erase something the conversation already knows.
func (ci *ClientInfo) Merge(other ClientInfo) {
	for _, f := range []string{FieldName, FieldPhone, FieldDeliveryType, FieldAddress, FieldPickupETAMin, FieldPaymentMethod} {
		if v := other.Field(f); v != "" {
			ci.SetField(f, v)
		}
	}
}
