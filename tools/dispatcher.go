package tools

import (
	"encoding/json"
	"fmt"

	"github.com/tablemate/waiterd/services"
	"github.com/tablemate/waiterd/utils"
)

// Tool names recognized by the dispatcher.
const (
	NameGetCategories           = "get_categories"
	NameGetMenu                 = "get_menu"
	NameGetAllergens            = "get_allergens"
	NamePlaceOrder              = "place_order"
	NameCancelOrderItem         = "cancel_order_item"
	NameUpdateOrderItemQuantity = "update_order_item_quantity"
	NameGetReceipt              = "get_receipt"
	NameProcessPayment          = "process_payment"
	NameGetFAQKeys              = "get_faq_keys"
	NameGetFAQValue             = "get_faq_value"
)

type GetCategoriesInput struct {
	IsFood *bool `json:"is_food"`
}

type GetMenuInput struct {
	IsFood        *bool    `json:"is_food"`
	Category      []string `json:"category"`
	IsRecommended *bool    `json:"is_recommended"`
	MinPrice      *float64 `json:"min_price"`
	MaxPrice      *float64 `json:"max_price"`
	MustInclude   []string `json:"must_include"`
	MustExclude   []string `json:"must_exclude"`
}

// GetAllergensInput distinguishes an absent allergens_to_check (nil, full
// allergen set) from a present-but-empty one (containment statements for
// nothing).
type GetAllergensInput struct {
	ItemName         string   `json:"item_name"`
	AllergensToCheck []string `json:"allergens_to_check"`
}

type PlaceOrderInput struct {
	OrderID              uint     `json:"order_id"`
	ItemName             string   `json:"item_name"`
	Quantity             *int     `json:"quantity"`
	SpecialInstructions  string   `json:"special_instructions"`
	IngredientsToExclude []string `json:"ingredients_to_exclude"`
}

type CancelOrderItemInput struct {
	OrderItemID uint `json:"order_item_id"`
}

type UpdateOrderItemQuantityInput struct {
	OrderItemID uint `json:"order_item_id"`
	NewQuantity int  `json:"new_quantity"`
}

type GetReceiptInput struct {
	OrderID   uint     `json:"order_id"`
	ItemNames []string `json:"item_names"`
}

type ProcessPaymentInput struct {
	OrderID   uint     `json:"order_id"`
	ItemNames []string `json:"item_names"`
}

type GetFAQValueInput struct {
	Key string `json:"key"`
}

// Dispatcher routes named tool calls to the domain services. Results and
// failures both come back as strings; no error ever crosses this boundary.
type Dispatcher struct {
	Catalog  *services.CatalogService
	Orders   *services.OrderService
	Receipts *services.ReceiptService
	FAQ      *services.FAQService
}

func NewDispatcher(catalog *services.CatalogService, orders *services.OrderService, receipts *services.ReceiptService, faq *services.FAQService) *Dispatcher {
	return &Dispatcher{
		Catalog:  catalog,
		Orders:   orders,
		Receipts: receipts,
		FAQ:      faq,
	}
}

// Dispatch executes one tool call and returns the result as a string.
// Message-valued operations pass through as-is; structured results are
// rendered as JSON.
func (d *Dispatcher) Dispatch(name string, input json.RawMessage) string {
	utils.InfoLogger.Printf("Tool execution: %s input: %s", name, string(input))

	result, err := d.call(name, input)
	if err != nil {
		message := fmt.Sprintf("Error executing %s: %v", name, err)
		utils.ErrorLogger.Error(message)
		return message
	}

	utils.InfoLogger.Printf("Tool result: %s", result)
	return result
}

func (d *Dispatcher) call(name string, input json.RawMessage) (string, error) {
	if len(input) == 0 {
		input = json.RawMessage("{}")
	}

	switch name {
	case NameGetCategories:
		var in GetCategoriesInput
		if err := json.Unmarshal(input, &in); err != nil {
			return "", err
		}
		categories, err := d.Catalog.ListCategories(in.IsFood)
		if err != nil {
			return "", err
		}
		if categories == nil {
			categories = []string{}
		}
		return renderJSON(map[string]interface{}{"categories": categories})

	case NameGetMenu:
		var in GetMenuInput
		if err := json.Unmarshal(input, &in); err != nil {
			return "", err
		}
		items, err := d.Catalog.SearchMenu(services.MenuFilter{
			IsFood:        in.IsFood,
			Categories:    in.Category,
			IsRecommended: in.IsRecommended,
			MinPrice:      in.MinPrice,
			MaxPrice:      in.MaxPrice,
			MustInclude:   in.MustInclude,
			MustExclude:   in.MustExclude,
		})
		if err != nil {
			return "", err
		}
		return renderJSON(map[string]interface{}{"items": items})

	case NameGetAllergens:
		var in GetAllergensInput
		if err := json.Unmarshal(input, &in); err != nil {
			return "", err
		}
		statements, err := d.Catalog.Allergens(in.ItemName, in.AllergensToCheck)
		if err != nil {
			return "", err
		}
		if statements == nil {
			statements = []string{}
		}
		return renderJSON(statements)

	case NamePlaceOrder:
		var in PlaceOrderInput
		if err := json.Unmarshal(input, &in); err != nil {
			return "", err
		}
		quantity := 1
		if in.Quantity != nil {
			quantity = *in.Quantity
		}
		return d.Orders.PlaceOrder(in.OrderID, in.ItemName, quantity, in.SpecialInstructions, in.IngredientsToExclude)

	case NameCancelOrderItem:
		var in CancelOrderItemInput
		if err := json.Unmarshal(input, &in); err != nil {
			return "", err
		}
		return d.Orders.CancelOrderItem(in.OrderItemID)

	case NameUpdateOrderItemQuantity:
		var in UpdateOrderItemQuantityInput
		if err := json.Unmarshal(input, &in); err != nil {
			return "", err
		}
		return d.Orders.UpdateOrderItemQuantity(in.OrderItemID, in.NewQuantity)

	case NameGetReceipt:
		var in GetReceiptInput
		if err := json.Unmarshal(input, &in); err != nil {
			return "", err
		}
		receipt, err := d.Receipts.Receipt(in.OrderID, in.ItemNames, false, false)
		if err != nil {
			return "", err
		}
		return renderJSON(receipt)

	case NameProcessPayment:
		var in ProcessPaymentInput
		if err := json.Unmarshal(input, &in); err != nil {
			return "", err
		}
		return d.Receipts.Payment(in.OrderID, in.ItemNames)

	case NameGetFAQKeys:
		keys, err := d.FAQ.Keys()
		if err != nil {
			return "", err
		}
		if keys == nil {
			keys = []string{}
		}
		return renderJSON(keys)

	case NameGetFAQValue:
		var in GetFAQValueInput
		if err := json.Unmarshal(input, &in); err != nil {
			return "", err
		}
		return d.FAQ.Value(in.Key)

	default:
		return fmt.Sprintf("Unknown tool: %s", name), nil
	}
}

func renderJSON(v interface{}) (string, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
