package models

import "time"

// Order represents a confirmed customer order in the kitchen queue.
type Order struct {
	ID            string      `gorm:"primary_key" json:"id"`
	ClientName    string      `json:"client_name"`
	Phone         string      `json:"phone"`
	DeliveryType  string      `json:"delivery_type"`
	Address       string      `json:"address"`
	PickupETAMin  int         `json:"pickup_eta_min"`
	PaymentMethod string      `json:"payment_method"`
	Items         []OrderItem `gorm:"foreignkey:OrderID" json:"items"`
	Total         float64     `json:"total"`
	Currency      string      `json:"currency"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	Priority      int         `gorm:"not null;default:0" json:"priority"`
	SLADeadline   time.Time   `gorm:"column:sla_deadline" json:"sla_deadline"`
	SLABreached   bool        `gorm:"column:sla_breached;not null;default:false" json:"sla_breached"`
}

// OrderItem represents an immutable line-item snapshot taken at confirmation.
type OrderItem struct {
	ID        uint    `gorm:"primary_key" json:"-"`
	OrderID   string  `gorm:"index" json:"-"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderDraftItem represents an item detected in conversation text. Drafts are
// transient; they only become OrderItems when the order is confirmed.
type OrderDraftItem struct {
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderStatus represents the possible states of an order
type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
)

// ValidOrderStatus reports whether s is one of the four named statuses.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusConfirmed, OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered:
		return true
	}
	return false
}
