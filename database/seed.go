package database

import (
	"github.com/tablemate/waiterd/models"
	"gorm.io/gorm"
)

// Seed provisions the trattoria catalog and FAQ entries. It runs only when
// the offerings table is empty, so restarts never duplicate rows.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Offering{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		gluten := models.Attribute{Name: "Gluten"}
		dairy := models.Attribute{Name: "Dairy"}
		eggs := models.Attribute{Name: "Eggs"}
		pork := models.Attribute{Name: "Pork"}
		for _, attr := range []*models.Attribute{&gluten, &dairy, &eggs, &pork} {
			if err := tx.Create(attr).Error; err != nil {
				return err
			}
		}

		ingredients := map[string]*models.Ingredient{
			"Wheat Dough":    {Name: "Wheat Dough", Attributes: []models.Attribute{gluten}},
			"Tomato Sauce":   {Name: "Tomato Sauce"},
			"Mozzarella":     {Name: "Mozzarella", Attributes: []models.Attribute{dairy}},
			"Basil":          {Name: "Basil"},
			"Olive Oil":      {Name: "Olive Oil"},
			"Spaghetti":      {Name: "Spaghetti", Attributes: []models.Attribute{gluten}},
			"Guanciale":      {Name: "Guanciale", Attributes: []models.Attribute{pork}},
			"Pecorino":       {Name: "Pecorino", Attributes: []models.Attribute{dairy}},
			"Egg Yolk":       {Name: "Egg Yolk", Attributes: []models.Attribute{eggs}},
			"Black Pepper":   {Name: "Black Pepper"},
			"Pasta Sheets":   {Name: "Pasta Sheets", Attributes: []models.Attribute{gluten, eggs}},
			"Beef Ragu":      {Name: "Beef Ragu"},
			"Parmesan":       {Name: "Parmesan", Attributes: []models.Attribute{dairy}},
			"Onions":         {Name: "Onions"},
			"Ladyfingers":    {Name: "Ladyfingers", Attributes: []models.Attribute{gluten, eggs}},
			"Mascarpone":     {Name: "Mascarpone", Attributes: []models.Attribute{dairy}},
			"Espresso":       {Name: "Espresso"},
			"Cocoa Powder":   {Name: "Cocoa Powder"},
			"Mineral Water":  {Name: "Mineral Water"},
			"Lemon":          {Name: "Lemon"},
			"Sparkling Wine": {Name: "Sparkling Wine"},
		}
		for _, ing := range ingredients {
			if err := tx.Create(ing).Error; err != nil {
				return err
			}
		}

		pizza := models.MenuCategory{Name: "Pizza", IsFood: true}
		pasta := models.MenuCategory{Name: "Pasta", IsFood: true}
		desserts := models.MenuCategory{Name: "Desserts", IsFood: true}
		drinks := models.MenuCategory{Name: "Drinks", IsFood: false}
		for _, cat := range []*models.MenuCategory{&pizza, &pasta, &desserts, &drinks} {
			if err := tx.Create(cat).Error; err != nil {
				return err
			}
		}

		assoc := func(name string, removable bool) models.OfferingIngredient {
			return models.OfferingIngredient{
				IngredientID: ingredients[name].ID,
				IsRemovable:  removable,
			}
		}

		offerings := []models.Offering{
			{
				Name:        "Margherita",
				Description: "Tomato sauce, mozzarella and fresh basil on a thin crust.",
				Price:       9.00,
				CategoryID:  &pizza.ID,
				Recommended: true,
				Quantity:    25,
				Ingredients: []models.OfferingIngredient{
					assoc("Wheat Dough", false),
					assoc("Tomato Sauce", false),
					assoc("Mozzarella", true),
					assoc("Basil", true),
					assoc("Olive Oil", true),
				},
			},
			{
				Name:        "Spaghetti Carbonara",
				Description: "Guanciale, egg yolk, pecorino and black pepper.",
				Price:       12.50,
				CategoryID:  &pasta.ID,
				Quantity:    20,
				Ingredients: []models.OfferingIngredient{
					assoc("Spaghetti", false),
					assoc("Egg Yolk", false),
					assoc("Guanciale", true),
					assoc("Pecorino", true),
					assoc("Black Pepper", true),
				},
			},
			{
				Name:        "Lasagne alla Bolognese",
				Description: "Layered pasta with slow-cooked beef ragu and parmesan.",
				Price:       13.00,
				CategoryID:  &pasta.ID,
				Quantity:    15,
				Ingredients: []models.OfferingIngredient{
					assoc("Pasta Sheets", false),
					assoc("Beef Ragu", false),
					assoc("Parmesan", true),
					assoc("Onions", true),
				},
			},
			{
				Name:        "Tiramisu",
				Description: "Ladyfingers soaked in espresso with mascarpone cream.",
				Price:       6.50,
				CategoryID:  &desserts.ID,
				Recommended: true,
				Quantity:    12,
				Ingredients: []models.OfferingIngredient{
					assoc("Ladyfingers", false),
					assoc("Mascarpone", false),
					assoc("Espresso", true),
					assoc("Cocoa Powder", true),
				},
			},
			{
				Name:        "Sparkling Water",
				Description: "Chilled bottle, 750ml.",
				Price:       3.00,
				CategoryID:  &drinks.ID,
				Quantity:    40,
				Ingredients: []models.OfferingIngredient{
					assoc("Mineral Water", false),
				},
			},
			{
				Name:        "Limoncello Spritz",
				Description: "Sparkling wine with lemon liqueur over ice.",
				Price:       7.00,
				CategoryID:  &drinks.ID,
				Recommended: true,
				Quantity:    30,
				Ingredients: []models.OfferingIngredient{
					assoc("Sparkling Wine", false),
					assoc("Lemon", true),
				},
			},
		}
		for i := range offerings {
			if err := tx.Create(&offerings[i]).Error; err != nil {
				return err
			}
		}

		faqs := []models.FAQ{
			{Key: "opening hours", Value: "We are open Monday to Saturday, 12:00 to 23:00. Closed on Sundays."},
			{Key: "address", Value: "Via Roma 12, Florence. Two minutes from the Duomo."},
			{Key: "reservations", Value: "Walk-ins are welcome. For groups of six or more please call +39 055 0123 456."},
			{Key: "wifi", Value: "Free guest wifi, network 'Trattoria', password 'buonappetito'."},
			{Key: "payment methods", Value: "We accept cash and all major cards at the table."},
		}
		for i := range faqs {
			if err := tx.Create(&faqs[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
