package tools_test

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tablemate/waiterd/models"
	"github.com/tablemate/waiterd/services"
	"github.com/tablemate/waiterd/tools"
	"github.com/tablemate/waiterd/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func newDispatcher(t *testing.T) (*tools.Dispatcher, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.MenuCategory{},
		&models.Offering{},
		&models.Ingredient{},
		&models.Attribute{},
		&models.OfferingIngredient{},
		&models.OrderItem{},
		&models.OrderItemModification{},
		&models.FAQ{},
		&models.OrderEvent{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	dairy := models.Attribute{ID: 1, Name: "Dairy"}
	if err := db.Create(&dairy).Error; err != nil {
		t.Fatalf("seed attribute: %v", err)
	}
	ingredients := []models.Ingredient{
		{ID: 1, Name: "Tomato"},
		{ID: 2, Name: "Mozzarella", Attributes: []models.Attribute{dairy}},
	}
	for i := range ingredients {
		if err := db.Create(&ingredients[i]).Error; err != nil {
			t.Fatalf("seed ingredient: %v", err)
		}
	}
	categories := []models.MenuCategory{
		{ID: 1, Name: "Pizza", IsFood: true},
		{ID: 2, Name: "Drinks", IsFood: false},
	}
	for i := range categories {
		if err := db.Create(&categories[i]).Error; err != nil {
			t.Fatalf("seed category: %v", err)
		}
	}
	pizzaCat, drinksCat := uint(1), uint(2)
	offerings := []models.Offering{
		{ID: 1, Name: "Margherita Pizza", Price: 12.5, CategoryID: &pizzaCat, Recommended: true, Quantity: 10},
		{ID: 2, Name: "Negroni", Price: 9, CategoryID: &drinksCat, Quantity: 20},
	}
	for i := range offerings {
		if err := db.Create(&offerings[i]).Error; err != nil {
			t.Fatalf("seed offering: %v", err)
		}
	}
	links := []models.OfferingIngredient{
		{OfferingID: 1, IngredientID: 1, IsRemovable: true},
		{OfferingID: 1, IngredientID: 2, IsRemovable: false},
	}
	for i := range links {
		if err := db.Create(&links[i]).Error; err != nil {
			t.Fatalf("seed offering ingredient: %v", err)
		}
	}

	orders := services.NewOrderService(db)
	dispatcher := tools.NewDispatcher(
		services.NewCatalogService(db),
		orders,
		services.NewReceiptService(db, orders),
		services.NewFAQService(db),
	)
	return dispatcher, db
}

func TestDispatchUnknownTool(t *testing.T) {
	d, _ := newDispatcher(t)

	result := d.Dispatch("get_weather", json.RawMessage(`{}`))
	assert.Equal(t, "Unknown tool: get_weather", result)
}

func TestDispatchRendersServiceErrors(t *testing.T) {
	d, _ := newDispatcher(t)

	result := d.Dispatch(tools.NameGetAllergens, json.RawMessage(`{"item_name":"Flux Capacitor"}`))
	assert.Equal(t, "Error executing get_allergens: Offering 'Flux Capacitor' not found.", result)
}

func TestDispatchMalformedInput(t *testing.T) {
	d, _ := newDispatcher(t)

	result := d.Dispatch(tools.NamePlaceOrder, json.RawMessage(`{"order_id": true}`))
	assert.True(t, strings.HasPrefix(result, "Error executing place_order:"), result)
}

func TestDispatchGetCategories(t *testing.T) {
	d, _ := newDispatcher(t)

	result := d.Dispatch(tools.NameGetCategories, json.RawMessage(`{}`))

	var payload struct {
		Categories []string `json:"categories"`
	}
	assert.NoError(t, json.Unmarshal([]byte(result), &payload))
	assert.ElementsMatch(t, []string{"Pizza", "Drinks"}, payload.Categories)
}

func TestDispatchGetMenu(t *testing.T) {
	d, _ := newDispatcher(t)

	result := d.Dispatch(tools.NameGetMenu, json.RawMessage(`{"is_food": true}`))

	var payload struct {
		Items []map[string]interface{} `json:"items"`
	}
	assert.NoError(t, json.Unmarshal([]byte(result), &payload))
	assert.Len(t, payload.Items, 1)
	assert.Equal(t, "Margherita Pizza", payload.Items[0]["food"])
	assert.Equal(t, []interface{}{"Dairy"}, payload.Items[0]["excluded items"])
}

func TestDispatchGetAllergensModes(t *testing.T) {
	d, _ := newDispatcher(t)

	result := d.Dispatch(tools.NameGetAllergens, json.RawMessage(`{"item_name":"Margherita Pizza"}`))
	assert.Equal(t, `["Dairy"]`, result)

	result = d.Dispatch(tools.NameGetAllergens, json.RawMessage(`{"item_name":"Margherita Pizza","allergens_to_check":["Nuts","Dairy"]}`))
	var statements []string
	assert.NoError(t, json.Unmarshal([]byte(result), &statements))
	assert.Equal(t, []string{
		"Margherita Pizza does not contain Nuts",
		"Margherita Pizza contains Dairy",
	}, statements)

	result = d.Dispatch(tools.NameGetAllergens, json.RawMessage(`{"item_name":"Margherita Pizza","allergens_to_check":[]}`))
	assert.Equal(t, `[]`, result)
}

func TestDispatchPlaceOrderDefaultsQuantity(t *testing.T) {
	d, db := newDispatcher(t)

	result := d.Dispatch(tools.NamePlaceOrder, json.RawMessage(`{"order_id":1,"item_name":"Margherita Pizza"}`))
	assert.True(t, strings.HasPrefix(result, "Successfully placed order for 1 x 'Margherita Pizza'"), result)

	var offering models.Offering
	assert.NoError(t, db.First(&offering, 1).Error)
	assert.Equal(t, 9, offering.Quantity)
}

func TestDispatchMessagePassthrough(t *testing.T) {
	d, _ := newDispatcher(t)

	result := d.Dispatch(tools.NameCancelOrderItem, json.RawMessage(`{"order_item_id":42}`))
	assert.Equal(t, "Error executing cancel_order_item: Order Item with ID 42 not found.", result)

	result = d.Dispatch(tools.NameUpdateOrderItemQuantity, json.RawMessage(`{"order_item_id":42,"new_quantity":-1}`))
	assert.Equal(t, "Quantity must be a non-negative number.", result)
}

func TestDispatchGetReceipt(t *testing.T) {
	d, _ := newDispatcher(t)

	placed := d.Dispatch(tools.NamePlaceOrder, json.RawMessage(`{"order_id":7,"item_name":"Margherita Pizza","quantity":2}`))
	assert.True(t, strings.HasPrefix(placed, "Successfully placed order for 2 x 'Margherita Pizza'"), placed)

	result := d.Dispatch(tools.NameGetReceipt, json.RawMessage(`{"order_id":7}`))

	var payload struct {
		Items []map[string]interface{} `json:"items"`
		Total float64                  `json:"total"`
	}
	assert.NoError(t, json.Unmarshal([]byte(result), &payload))
	assert.Len(t, payload.Items, 1)
	assert.Equal(t, "Margherita Pizza", payload.Items[0]["item name"])
	assert.Equal(t, 12.5, payload.Items[0]["item value"])
	assert.Equal(t, 2.0, payload.Items[0]["quantity"])
	assert.NotContains(t, payload.Items[0], "status")
	assert.Equal(t, 12.5, payload.Total)
}

func TestDispatchEmptyInput(t *testing.T) {
	d, _ := newDispatcher(t)

	result := d.Dispatch(tools.NameGetFAQKeys, nil)
	assert.Equal(t, `[]`, result)
}

func TestDispatchFAQValuePassthrough(t *testing.T) {
	d, db := newDispatcher(t)
	assert.NoError(t, db.Create(&models.FAQ{Key: "wifi", Value: "Ask the counter."}).Error)

	result := d.Dispatch(tools.NameGetFAQValue, json.RawMessage(`{"key":"wifi"}`))
	assert.Equal(t, "Ask the counter.", result)

	result = d.Dispatch(tools.NameGetFAQValue, json.RawMessage(`{"key":"parking"}`))
	assert.Equal(t, "Error executing get_faq_value: FAQ key 'parking' not found.", result)
}
