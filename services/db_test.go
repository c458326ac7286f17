package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tablemate/waiterd/models"
)

// openTestDB opens an in-memory database migrated with the full schema. The
// DSN is keyed by test name so tests never share state.
func openTestDB(t *testing.T) *gorm.DB {
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
	return db
}

// seedMenu loads a small trattoria fixture:
//
//	Margherita Pizza  (Pizza, recommended, stock 10, 12.50)
//	                  Tomato and Basil removable, Mozzarella and Wheat Flour not
//	Negroni           (Drinks, stock 20, 9.00)
//	Almond Tart       (no category, stock 4, 6.50)
func seedMenu(t *testing.T, db *gorm.DB) {
	t.Helper()

	dairy := models.Attribute{ID: 1, Name: "Dairy"}
	gluten := models.Attribute{ID: 2, Name: "Gluten"}
	nuts := models.Attribute{ID: 3, Name: "Nuts"}
	for _, attr := range []*models.Attribute{&dairy, &gluten, &nuts} {
		if err := db.Create(attr).Error; err != nil {
			t.Fatalf("seed attribute %s: %v", attr.Name, err)
		}
	}

	ingredients := []models.Ingredient{
		{ID: 1, Name: "Tomato"},
		{ID: 2, Name: "Mozzarella", Attributes: []models.Attribute{dairy}},
		{ID: 3, Name: "Wheat Flour", Attributes: []models.Attribute{gluten}},
		{ID: 4, Name: "Basil"},
		{ID: 5, Name: "Almond", Attributes: []models.Attribute{nuts}},
		{ID: 6, Name: "Gin"},
	}
	for i := range ingredients {
		if err := db.Create(&ingredients[i]).Error; err != nil {
			t.Fatalf("seed ingredient %s: %v", ingredients[i].Name, err)
		}
	}

	categories := []models.MenuCategory{
		{ID: 1, Name: "Pizza", IsFood: true},
		{ID: 2, Name: "Drinks", IsFood: false},
	}
	for i := range categories {
		if err := db.Create(&categories[i]).Error; err != nil {
			t.Fatalf("seed category %s: %v", categories[i].Name, err)
		}
	}

	offerings := []models.Offering{
		{ID: 1, Name: "Margherita Pizza", Description: "Tomato, mozzarella and basil", Price: 12.5, CategoryID: uintPtr(1), Recommended: true, Quantity: 10},
		{ID: 2, Name: "Negroni", Description: "Gin, vermouth and bitters", Price: 9, CategoryID: uintPtr(2), Quantity: 20},
		{ID: 3, Name: "Almond Tart", Description: "House dessert", Price: 6.5, Quantity: 4},
	}
	for i := range offerings {
		if err := db.Create(&offerings[i]).Error; err != nil {
			t.Fatalf("seed offering %s: %v", offerings[i].Name, err)
		}
	}

	links := []models.OfferingIngredient{
		{OfferingID: 1, IngredientID: 1, IsRemovable: true},
		{OfferingID: 1, IngredientID: 2, IsRemovable: false},
		{OfferingID: 1, IngredientID: 3, IsRemovable: false},
		{OfferingID: 1, IngredientID: 4, IsRemovable: true},
		{OfferingID: 2, IngredientID: 6, IsRemovable: false},
		{OfferingID: 3, IngredientID: 5, IsRemovable: false},
		{OfferingID: 3, IngredientID: 3, IsRemovable: false},
	}
	for i := range links {
		if err := db.Create(&links[i]).Error; err != nil {
			t.Fatalf("seed offering ingredient: %v", err)
		}
	}
}

func uintPtr(v uint) *uint        { return &v }
func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }

func offeringStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var offering models.Offering
	if err := db.First(&offering, id).Error; err != nil {
		t.Fatalf("load offering %d: %v", id, err)
	}
	return offering.Quantity
}
