package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tablemate/waiterd/models"
)

// ReceiptService builds itemized receipts and settles payment. Receipts
// refresh the order's statuses first so they never show stale states.
type ReceiptService struct {
	DB     *gorm.DB
	Orders *OrderService
}

func NewReceiptService(db *gorm.DB, orders *OrderService) *ReceiptService {
	return &ReceiptService{DB: db, Orders: orders}
}

// ReceiptItem is one billed line. Status is only present when the caller
// asked for statuses.
type ReceiptItem struct {
	OrderItemID uint    `json:"order_item_id"`
	ItemName    string  `json:"item name"`
	ItemValue   float64 `json:"item value"`
	Quantity    int     `json:"quantity"`
	Status      string  `json:"status,omitempty"`
}

// Receipt lists the billed items and their total. Total is the sum of unit
// prices across the listed items; quantities do not multiply into it.
type Receipt struct {
	Items []ReceiptItem `json:"items"`
	Total float64       `json:"total"`
}

// Receipt returns the billable items of an order. Cancelled items never
// appear. Paid items appear only when includePaid is set, and even then
// paid-completed items from previous sessions stay hidden. A non-empty
// itemNames restricts the receipt to offerings with those names.
func (s *ReceiptService) Receipt(orderID uint, itemNames []string, includePaid, includeStatus bool) (*Receipt, error) {
	if _, err := s.Orders.RefreshOrderStatuses(&orderID); err != nil {
		return nil, err
	}

	query := s.DB.Model(&models.OrderItem{}).
		Select("order_items.*").
		Preload("Offering").
		Where("order_items.order_id = ?", orderID).
		Where("order_items.order_status NOT IN ?", []string{models.StatusCancelled, models.StatusCancelledCompleted})

	if len(itemNames) > 0 {
		query = query.
			Joins("JOIN offerings ON offerings.offering_id = order_items.offering_id").
			Where("offerings.name IN ?", itemNames)
	}

	if !includePaid {
		query = query.Where("order_items.order_status NOT IN ?", []string{models.StatusPaid, models.StatusPaidCompleted})
	} else {
		query = query.Where("order_items.order_status <> ?", models.StatusPaidCompleted)
	}

	var items []models.OrderItem
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("load receipt items: %w", err)
	}

	receipt := &Receipt{Items: make([]ReceiptItem, 0, len(items))}
	for _, item := range items {
		entry := ReceiptItem{
			OrderItemID: item.ID,
			ItemName:    item.Offering.Name,
			ItemValue:   item.Offering.Price,
			Quantity:    item.Quantity,
		}
		if includeStatus {
			entry.Status = item.OrderStatus
		}
		receipt.Items = append(receipt.Items, entry)
		receipt.Total += item.Offering.Price
	}
	return receipt, nil
}

// Payment marks the matching items of an order as paid, whatever their
// current status. Already-paid items are left alone. The three outcomes
// (nothing matched, some flipped, all were already paid) each get their
// own message.
func (s *ReceiptService) Payment(orderID uint, itemNames []string) (string, error) {
	var message string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		query := forUpdate(tx).
			Select("order_items.*").
			Where("order_items.order_id = ?", orderID)
		if len(itemNames) > 0 {
			query = query.
				Joins("JOIN offerings ON offerings.offering_id = order_items.offering_id").
				Where("offerings.name IN ?", itemNames)
		}

		var items []models.OrderItem
		if err := query.Find(&items).Error; err != nil {
			return fmt.Errorf("load order items: %w", err)
		}

		if len(items) == 0 {
			message = "No items found for the given criteria."
			return nil
		}

		now := time.Now().UTC()
		count := 0
		for _, item := range items {
			if item.OrderStatus == models.StatusPaid {
				continue
			}
			if err := tx.Model(&models.OrderItem{}).
				Where("order_item_id = ?", item.ID).
				Updates(map[string]interface{}{
					"order_status":    models.StatusPaid,
					"sys_update_date": now,
				}).Error; err != nil {
				return fmt.Errorf("mark order item %d paid: %w", item.ID, err)
			}
			if err := tx.Create(&models.OrderEvent{
				Event:       models.EventOrderPaid,
				OrderID:     item.OrderID,
				OrderItemID: item.ID,
				OrderStatus: models.StatusPaid,
			}).Error; err != nil {
				return fmt.Errorf("append order event: %w", err)
			}
			count++
		}

		if count > 0 {
			message = fmt.Sprintf("Payment successful. %d item(s) marked as paid.", count)
		} else {
			message = "All specified items were already paid."
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return message, nil
}
