package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tablemate/waiterd/models"
)

// OrderService owns every write to the order ledger. Operations that touch
// offering stock or an item's status run inside one transaction with the
// targeted rows locked.
type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// forUpdate adds a row-level exclusive lock to the query. SQLite rejects
// FOR UPDATE syntax and serializes writers on its own, so the clause is
// only added for drivers that support it.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// PlaceOrder creates a pending order item for the offering named itemName,
// records one modification per resolved removable exclusion and decrements
// the offering's stock, all in one transaction with the offering row locked.
//
// Exclusions come from ingredientsToExclude when given; otherwise they are
// inferred from specialInstructions. Insufficient stock is reported in the
// returned message, not as an error.
func (s *OrderService) PlaceOrder(orderID uint, itemName string, quantity int, specialInstructions string, ingredientsToExclude []string) (string, error) {
	excludes := append([]string(nil), ingredientsToExclude...)

	var message string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var offering models.Offering
		err := forUpdate(tx).
			Preload("Ingredients.Ingredient").
			Where("name = ?", itemName).
			First(&offering).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError{Message: fmt.Sprintf("Offering '%s' not found.", itemName)}
		}
		if err != nil {
			return fmt.Errorf("find offering: %w", err)
		}

		if len(excludes) == 0 {
			excludes = inferRemovableIngredients(&offering, specialInstructions)
		}

		if offering.Quantity < quantity {
			message = fmt.Sprintf("Order cannot be placed as you requested %d %s but only %d in stock",
				quantity, offering.Name, offering.Quantity)
			return nil
		}

		item := models.OrderItem{
			OrderID:             orderID,
			OfferingID:          offering.ID,
			Quantity:            quantity,
			SpecialInstructions: specialInstructions,
			OrderStatus:         models.StatusPending,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("create order item: %w", err)
		}

		classified := classifyRemovalRequests(&offering, excludes)
		var appliedRemovals []string
		for _, assoc := range classified.removable {
			appliedRemovals = append(appliedRemovals, assoc.Ingredient.Name)
			mod := models.OrderItemModification{
				OrderItemID:          item.ID,
				IngredientIDToRemove: assoc.IngredientID,
			}
			if err := tx.Create(&mod).Error; err != nil {
				return fmt.Errorf("record modification: %w", err)
			}
		}

		if err := tx.Model(&models.Offering{}).
			Where("offering_id = ?", offering.ID).
			Update("quantity", gorm.Expr("quantity - ?", quantity)).Error; err != nil {
			return fmt.Errorf("reserve stock: %w", err)
		}

		if err := tx.Create(&models.OrderEvent{
			Event:       models.EventOrderPlaced,
			OrderID:     orderID,
			OrderItemID: item.ID,
			OrderStatus: models.StatusPending,
		}).Error; err != nil {
			return fmt.Errorf("append order event: %w", err)
		}

		parts := []string{
			fmt.Sprintf("Successfully placed order for %d x '%s' (Order Item ID: %d).", quantity, itemName, item.ID),
		}
		if len(appliedRemovals) > 0 {
			parts = append(parts, "Noted removable ingredient exclusions: "+strings.Join(appliedRemovals, ", "))
		}
		if len(classified.missing) > 0 {
			parts = append(parts, "Skipped unknown ingredients: "+strings.Join(classified.missing, ", "))
		}
		if len(classified.locked) > 0 {
			parts = append(parts, "Unable to remove protected ingredients: "+strings.Join(classified.locked, ", "))
		}
		message = strings.Join(parts, " ")
		return nil
	})
	if err != nil {
		return "", err
	}
	return message, nil
}

// CancelOrderItem cancels a pending order item and credits its quantity
// back to the offering's stock. Items past pending are left untouched and
// the refusal is reported in the returned message.
func (s *OrderService) CancelOrderItem(orderItemID uint) (string, error) {
	var message string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var item models.OrderItem
		err := forUpdate(tx).First(&item, orderItemID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError{Message: fmt.Sprintf("Order Item with ID %d not found.", orderItemID)}
		}
		if err != nil {
			return fmt.Errorf("find order item: %w", err)
		}

		if item.OrderStatus != models.StatusPending {
			message = fmt.Sprintf("Order item cannot be cancelled as its status is '%s'.", item.OrderStatus)
			return nil
		}

		if err := tx.Model(&models.Offering{}).
			Where("offering_id = ?", item.OfferingID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error; err != nil {
			return fmt.Errorf("restore stock: %w", err)
		}

		now := time.Now().UTC()
		if err := tx.Model(&models.OrderItem{}).
			Where("order_item_id = ?", item.ID).
			Updates(map[string]interface{}{
				"order_status":    models.StatusCancelled,
				"sys_update_date": now,
			}).Error; err != nil {
			return fmt.Errorf("cancel order item: %w", err)
		}

		if err := tx.Create(&models.OrderEvent{
			Event:       models.EventOrderCancelled,
			OrderID:     item.OrderID,
			OrderItemID: item.ID,
			OrderStatus: models.StatusCancelled,
		}).Error; err != nil {
			return fmt.Errorf("append order event: %w", err)
		}

		message = fmt.Sprintf("Order Item ID %d has been successfully cancelled.", orderItemID)
		return nil
	})
	if err != nil {
		return "", err
	}
	return message, nil
}

// UpdateOrderItemQuantity changes the quantity of a pending item, adjusting
// offering stock by the difference. newQuantity 0 cancels the item. Items
// already past pending are never mutated; a fresh item is placed for the
// same order instead.
func (s *OrderService) UpdateOrderItemQuantity(orderItemID uint, newQuantity int) (string, error) {
	if newQuantity < 0 {
		return "Quantity must be a non-negative number.", nil
	}
	if newQuantity == 0 {
		return s.CancelOrderItem(orderItemID)
	}

	var (
		message  string
		replace  bool
		orderID  uint
		itemName string
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var item models.OrderItem
		err := forUpdate(tx).First(&item, orderItemID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError{Message: fmt.Sprintf("Order Item with ID %d not found.", orderItemID)}
		}
		if err != nil {
			return fmt.Errorf("find order item: %w", err)
		}

		if item.OrderStatus != models.StatusPending {
			var offering models.Offering
			if err := tx.First(&offering, item.OfferingID).Error; err != nil {
				return fmt.Errorf("find offering: %w", err)
			}
			replace = true
			orderID = item.OrderID
			itemName = offering.Name
			return nil
		}

		var offering models.Offering
		if err := forUpdate(tx).First(&offering, item.OfferingID).Error; err != nil {
			return fmt.Errorf("find offering: %w", err)
		}

		delta := newQuantity - item.Quantity
		if delta > 0 && offering.Quantity < delta {
			message = fmt.Sprintf("Cannot increase quantity. Only %d additional items are in stock.", offering.Quantity)
			return nil
		}

		if err := tx.Model(&models.Offering{}).
			Where("offering_id = ?", offering.ID).
			Update("quantity", gorm.Expr("quantity - ?", delta)).Error; err != nil {
			return fmt.Errorf("adjust stock: %w", err)
		}

		now := time.Now().UTC()
		if err := tx.Model(&models.OrderItem{}).
			Where("order_item_id = ?", item.ID).
			Updates(map[string]interface{}{
				"quantity":        newQuantity,
				"sys_update_date": now,
			}).Error; err != nil {
			return fmt.Errorf("update quantity: %w", err)
		}

		if err := tx.Create(&models.OrderEvent{
			Event:       models.EventQuantityChanged,
			OrderID:     item.OrderID,
			OrderItemID: item.ID,
			OrderStatus: item.OrderStatus,
		}).Error; err != nil {
			return fmt.Errorf("append order event: %w", err)
		}

		message = fmt.Sprintf("Successfully updated quantity for item %d to %d.", orderItemID, newQuantity)
		return nil
	})
	if err != nil {
		return "", err
	}

	// An in-flight item keeps its quantity; the change becomes a fresh
	// order item, placed outside the read transaction.
	if replace {
		return s.PlaceOrder(orderID, itemName, newQuantity, "", nil)
	}
	return message, nil
}

// FinalizePreviousOrders rewrites leftover paid and cancelled items from an
// earlier run to their -completed variants. It runs once at process start
// and returns the number of rows archived.
func (s *OrderService) FinalizePreviousOrders() (int, error) {
	var total int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		paid := tx.Model(&models.OrderItem{}).
			Where("order_status = ?", models.StatusPaid).
			Updates(map[string]interface{}{
				"order_status":    models.StatusPaidCompleted,
				"sys_update_date": now,
			})
		if paid.Error != nil {
			return fmt.Errorf("archive paid items: %w", paid.Error)
		}

		cancelled := tx.Model(&models.OrderItem{}).
			Where("order_status = ?", models.StatusCancelled).
			Updates(map[string]interface{}{
				"order_status":    models.StatusCancelledCompleted,
				"sys_update_date": now,
			})
		if cancelled.Error != nil {
			return fmt.Errorf("archive cancelled items: %w", cancelled.Error)
		}

		total = paid.RowsAffected + cancelled.RowsAffected
		return nil
	})
	return int(total), err
}

// RefreshOrderStatuses advances stale pending and preparing items one step
// each: pending items a minute past their last change become preparing,
// preparing items become served. A non-nil orderID restricts the sweep to
// that order. Returns the number of items advanced.
func (s *OrderService) RefreshOrderStatuses(orderID *uint) (int, error) {
	var advanced int
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("order_status IN ?", []string{models.StatusPending, models.StatusPreparing})
		if orderID != nil {
			query = query.Where("order_id = ?", *orderID)
		}
		var items []models.OrderItem
		if err := query.Find(&items).Error; err != nil {
			return fmt.Errorf("load active items: %w", err)
		}

		now := time.Now().UTC()
		for _, item := range items {
			reference := now
			if item.SysUpdateDate != nil {
				reference = *item.SysUpdateDate
			} else if !item.SysCreationDate.IsZero() {
				reference = item.SysCreationDate
			}
			if now.Sub(reference) < time.Minute {
				continue
			}

			var next string
			switch item.OrderStatus {
			case models.StatusPending:
				next = models.StatusPreparing
			case models.StatusPreparing:
				next = models.StatusServed
			default:
				continue
			}

			if err := tx.Model(&models.OrderItem{}).
				Where("order_item_id = ?", item.ID).
				Updates(map[string]interface{}{
					"order_status":    next,
					"sys_update_date": now,
				}).Error; err != nil {
				return fmt.Errorf("advance order item %d: %w", item.ID, err)
			}

			if err := tx.Create(&models.OrderEvent{
				Event:       models.EventStatusAdvanced,
				OrderID:     item.OrderID,
				OrderItemID: item.ID,
				OrderStatus: next,
			}).Error; err != nil {
				return fmt.Errorf("append order event: %w", err)
			}
			advanced++
		}
		return nil
	})
	return advanced, err
}
