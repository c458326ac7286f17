package models

import (
	"time"
)

// Order item statuses. Items only move forward: pending -> preparing ->
// served, pending -> cancelled, any non-paid -> paid. The -completed
// variants are applied by the startup archival sweep and never by request
// handling.
const (
	StatusPending            = "pending"
	StatusPreparing          = "preparing"
	StatusServed             = "served"
	StatusPaid               = "paid"
	StatusCancelled          = "cancelled"
	StatusPaidCompleted      = "paid-completed"
	StatusCancelledCompleted = "cancelled-completed"
)

// OrderItem is one line of an order. OrderID is a plain grouping key supplied
// by the caller, not a foreign key to an order table.
type OrderItem struct {
	ID                  uint       `gorm:"column:order_item_id;primaryKey" json:"order_item_id"`
	OrderID             uint       `gorm:"not null;index" json:"order_id"`
	OfferingID          uint       `gorm:"not null" json:"offering_id"`
	Offering            Offering   `gorm:"foreignKey:OfferingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"offering"`
	Quantity            int        `gorm:"not null" json:"quantity"`
	SpecialInstructions string     `gorm:"type:text" json:"special_instructions"`
	OrderStatus         string     `gorm:"type:varchar(32);not null;default:'pending';index" json:"order_status"`
	SysCreationDate     time.Time  `gorm:"column:sys_creation_date;not null;autoCreateTime" json:"sys_creation_date"`
	SysUpdateDate       *time.Time `gorm:"column:sys_update_date" json:"sys_update_date,omitempty"`

	Modifications []OrderItemModification `gorm:"foreignKey:OrderItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"modifications,omitempty"`
}

// OrderItemModification records one excluded ingredient for an order item.
// The referenced ingredient must not be deleted while referenced.
type OrderItemModification struct {
	ID                   uint       `gorm:"column:modification_id;primaryKey" json:"modification_id"`
	OrderItemID          uint       `gorm:"not null;index" json:"order_item_id"`
	IngredientIDToRemove uint       `gorm:"column:ingredient_id_to_remove;not null" json:"ingredient_id_to_remove"`
	Ingredient           Ingredient `gorm:"foreignKey:IngredientIDToRemove;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"ingredient,omitempty"`
}
