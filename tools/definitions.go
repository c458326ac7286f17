package tools

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"
)

func toolDefinition(name, description string, properties map[string]interface{}, required []string) anthropic.ToolUnionParam {
	tool := anthropic.ToolUnionParamOfTool(anthropic.ToolInputSchemaParam{
		Type:       constant.Object("object"),
		Properties: properties,
		Required:   required,
	}, name)
	tool.OfTool.Description = anthropic.String(description)
	return tool
}

// Definitions returns the tool declarations advertised to the model. The
// names match exactly what Dispatch recognizes.
func Definitions() []anthropic.ToolUnionParam {
	return []anthropic.ToolUnionParam{
		toolDefinition(
			NameGetCategories,
			"Get all available menu categories, optionally filtered by food or drink type.",
			map[string]interface{}{
				"is_food": map[string]interface{}{
					"type":        "boolean",
					"description": "Filter for food categories (true) or drink categories (false). Omit to get all categories.",
				},
			},
			[]string{},
		),
		toolDefinition(
			NameGetMenu,
			"Search and filter the menu with advanced criteria including food/drink type, categories, recommendations, price range, and ingredient requirements.",
			map[string]interface{}{
				"is_food": map[string]interface{}{
					"type":        "boolean",
					"description": "Filter for food items (true) or drinks (false). Omit to get both.",
				},
				"category": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "List of category names to filter by (e.g., ['Appetizers', 'Main Course'])",
				},
				"is_recommended": map[string]interface{}{
					"type":        "boolean",
					"description": "Filter for recommended items (true) or non-recommended (false). Omit for all.",
				},
				"min_price": map[string]interface{}{
					"type":        "number",
					"description": "Minimum price for items",
				},
				"max_price": map[string]interface{}{
					"type":        "number",
					"description": "Maximum price for items",
				},
				"must_include": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "List of ingredient names that must be present in the item",
				},
				"must_exclude": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "List of ingredient names that must NOT be present in the item (allergens)",
				},
			},
			[]string{},
		),
		toolDefinition(
			NameGetAllergens,
			"Get allergen information for a specific menu item. Can return all allergens or check specific ones.",
			map[string]interface{}{
				"item_name": map[string]interface{}{
					"type":        "string",
					"description": "The exact name of the menu item",
				},
				"allergens_to_check": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Optional list of specific allergens to check for (e.g., ['Gluten', 'Dairy']). If omitted, returns all allergens in the item.",
				},
			},
			[]string{"item_name"},
		),
		toolDefinition(
			NamePlaceOrder,
			"Place an order for a specific menu item with optional special instructions and ingredient exclusions.",
			map[string]interface{}{
				"order_id": map[string]interface{}{
					"type":        "integer",
					"description": "The ID of the parent order",
				},
				"item_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the menu item to order",
				},
				"quantity": map[string]interface{}{
					"type":        "integer",
					"description": "Number of items to order (default: 1)",
					"default":     1,
				},
				"special_instructions": map[string]interface{}{
					"type":        "string",
					"description": "Any special instructions for the kitchen",
				},
				"ingredients_to_exclude": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "List of ingredient names to remove from the offering",
				},
			},
			[]string{"order_id", "item_name"},
		),
		toolDefinition(
			NameCancelOrderItem,
			"Cancel an order item if its status is 'pending'. The quantity is returned to stock.",
			map[string]interface{}{
				"order_item_id": map[string]interface{}{
					"type":        "integer",
					"description": "The ID of the order item to cancel",
				},
			},
			[]string{"order_item_id"},
		),
		toolDefinition(
			NameUpdateOrderItemQuantity,
			"Update the quantity of an existing order item. If pending, modifies directly. If not pending, creates a new order. Setting quantity to 0 cancels the item.",
			map[string]interface{}{
				"order_item_id": map[string]interface{}{
					"type":        "integer",
					"description": "The ID of the order item to update",
				},
				"new_quantity": map[string]interface{}{
					"type":        "integer",
					"description": "The new quantity for the order item (0 to cancel)",
				},
			},
			[]string{"order_item_id", "new_quantity"},
		),
		toolDefinition(
			NameGetReceipt,
			"Generate a receipt for an order, showing all items and the total cost. Can optionally filter by specific item names.",
			map[string]interface{}{
				"order_id": map[string]interface{}{
					"type":        "integer",
					"description": "The ID of the order to generate receipt for",
				},
				"item_names": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Optional list of item names to include in receipt. Omit to include all items.",
				},
			},
			[]string{"order_id"},
		),
		toolDefinition(
			NameProcessPayment,
			"Process payment for order items, marking them as paid. Can process all items or specific items by name.",
			map[string]interface{}{
				"order_id": map[string]interface{}{
					"type":        "integer",
					"description": "The ID of the order to process payment for",
				},
				"item_names": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Optional list of item names to pay for. Omit to pay for all items.",
				},
			},
			[]string{"order_id"},
		),
		toolDefinition(
			NameGetFAQKeys,
			"Get all available FAQ topics/keys that customers can ask about.",
			map[string]interface{}{},
			nil,
		),
		toolDefinition(
			NameGetFAQValue,
			"Get the answer to a specific FAQ question by its key.",
			map[string]interface{}{
				"key": map[string]interface{}{
					"type":        "string",
					"description": "The FAQ key/topic to get the answer for",
				},
			},
			[]string{"key"},
		),
	}
}
