package models

import (
	"time"
)

// Order event names broadcast over the websocket feed.
const (
	EventOrderPlaced     = "order_placed"
	EventOrderCancelled  = "order_cancelled"
	EventQuantityChanged = "quantity_changed"
	EventStatusAdvanced  = "status_advanced"
	EventOrderPaid       = "order_paid"
)

// OrderEvent is an append-only change feed row, written in the same
// transaction as the ledger change it records and polled by the event
// monitor.
type OrderEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Event       string    `gorm:"type:varchar(50);not null" json:"event"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	OrderItemID uint      `gorm:"not null" json:"order_item_id"`
	OrderStatus string    `gorm:"type:varchar(32);not null" json:"order_status"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
