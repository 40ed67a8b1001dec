// Package orders manages the confirmed-order queue and its SLA pressure. The
// SLA sweep is pull-based: readers of the queue run it first; there is no
// background clock.
package orders

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"comanda/internal/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// ErrNoItems rejects order confirmation without a single item. No partial
// order is ever created.
var ErrNoItems = errors.New("no items to create order")

// Queue is the order store with SLA bookkeeping.
type Queue struct {
	db         *gorm.DB
	slaMinutes int
	now        func() time.Time
}

// NewQueue creates a queue whose orders get a deadline of slaMinutes from
// creation.
func NewQueue(db *gorm.DB, slaMinutes int) *Queue {
	return &Queue{db: db, slaMinutes: slaMinutes, now: time.Now}
}

// WithClock overrides the queue clock.
func (q *Queue) WithClock(now func() time.Time) *Queue {
	q.now = now
	return q
}

// Create confirms an order: snapshots the items, totals them, stamps the SLA
// deadline and enqueues at priority zero.
func (q *Queue) Create(client models.ClientInfo, items []models.OrderDraftItem, currency string) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	total := 0.0
	snapshot := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		qty := it.Qty
		if qty < 1 {
			qty = 1
		}
		total += it.UnitPrice * float64(qty)
		snapshot = append(snapshot, models.OrderItem{Name: it.Name, Qty: qty, UnitPrice: it.UnitPrice})
	}

	eta, _ := strconv.Atoi(strings.TrimSpace(client.PickupETAMin))
	now := q.now()
	order := &models.Order{
		ID:            "ord_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12],
		ClientName:    client.Name,
		Phone:         client.Phone,
		DeliveryType:  client.DeliveryType,
		Address:       client.Address,
		PickupETAMin:  eta,
		PaymentMethod: client.PaymentMethod,
		Items:         snapshot,
		Total:         math.Round(total*100) / 100,
		Currency:      currency,
		Status:        string(models.OrderStatusConfirmed),
		CreatedAt:     now,
		Priority:      0,
		SLADeadline:   now.Add(time.Duration(q.slaMinutes) * time.Minute),
	}
	if err := q.db.Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

// ListQueue returns the serving order for the kitchen: breached orders first,
// then higher priority, then oldest.
func (q *Queue) ListQueue() ([]models.Order, error) {
	var out []models.Order
	err := q.db.Preload("Items").
		Order("sla_breached DESC, priority DESC, created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list order queue: %w", err)
	}
	return out, nil
}

// SweepSLA marks every undelivered order past its deadline as breached and
// bumps its priority. Each sweep bumps again while the order stays breached
// and undelivered; the breach flag and priority only ever move forward.
func (q *Queue) SweepSLA() error {
	err := q.db.Model(&models.Order{}).
		Where("sla_deadline < ? AND status <> ?", q.now(), models.OrderStatusDelivered).
		Updates(map[string]interface{}{
			"sla_breached": true,
			"priority":     gorm.Expr("priority + 1"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to sweep SLA deadlines: %w", err)
	}
	return nil
}

// SetStatus overwrites an order's status. Only the four named statuses are
// accepted; no transition table is enforced beyond that.
func (q *Queue) SetStatus(id, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("invalid order status %q", status)
	}
	res := q.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update order status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s not found", id)
	}
	return nil
}

// Get returns one order with its items.
func (q *Queue) Get(id string) (*models.Order, error) {
	var order models.Order
	err := q.db.Preload("Items").Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load order %s: %w", id, err)
	}
	return &order, nil
}
