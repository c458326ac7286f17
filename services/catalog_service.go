package services

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/tablemate/waiterd/models"
)

// CatalogService answers read-only questions about categories, offerings
// and allergens. It never takes row locks.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// MenuFilter narrows a menu search. Nil fields and empty slices are not
// applied; all supplied filters must match (conjunction).
type MenuFilter struct {
	IsFood        *bool
	Categories    []string
	IsRecommended *bool
	MinPrice      *float64
	MaxPrice      *float64
	MustInclude   []string
	MustExclude   []string
}

// MenuItem is one row of a menu search result. The "excluded items" key
// carries the deduplicated allergen attribute union across the offering's
// ingredients.
type MenuItem struct {
	Category    string   `json:"category"`
	Food        string   `json:"food"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Allergens   []string `json:"excluded items"`
}

// ListCategories returns category names, restricted to food or drink
// categories when isFood is given.
func (s *CatalogService) ListCategories(isFood *bool) ([]string, error) {
	query := s.DB.Model(&models.MenuCategory{})
	if isFood != nil {
		query = query.Where("is_food = ?", *isFood)
	}
	var names []string
	if err := query.Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return names, nil
}

// SearchMenu returns the offerings matching every supplied filter. The
// must_include and must_exclude lists each add one presence test per
// ingredient name, so they AND across the list rather than OR.
func (s *CatalogService) SearchMenu(filter MenuFilter) ([]MenuItem, error) {
	query := s.DB.Model(&models.Offering{}).
		Select("offerings.*").
		Preload("Category").
		Preload("Ingredients.Ingredient.Attributes")

	if filter.IsFood != nil || len(filter.Categories) > 0 {
		query = query.Joins("JOIN menu_categories ON menu_categories.category_id = offerings.category_id")
		if filter.IsFood != nil {
			query = query.Where("menu_categories.is_food = ?", *filter.IsFood)
		}
		if len(filter.Categories) > 0 {
			query = query.Where("menu_categories.name IN ?", filter.Categories)
		}
	}
	if filter.IsRecommended != nil {
		query = query.Where("offerings.recommended = ?", *filter.IsRecommended)
	}
	if filter.MinPrice != nil {
		query = query.Where("offerings.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("offerings.price <= ?", *filter.MaxPrice)
	}
	for _, name := range filter.MustInclude {
		query = query.Where(
			"EXISTS (SELECT 1 FROM offering_ingredients oi JOIN ingredients i ON i.ingredient_id = oi.ingredient_id WHERE oi.offering_id = offerings.offering_id AND i.name = ?)",
			name,
		)
	}
	for _, name := range filter.MustExclude {
		query = query.Where(
			"NOT EXISTS (SELECT 1 FROM offering_ingredients oi JOIN ingredients i ON i.ingredient_id = oi.ingredient_id WHERE oi.offering_id = offerings.offering_id AND i.name = ?)",
			name,
		)
	}

	var offerings []models.Offering
	if err := query.Find(&offerings).Error; err != nil {
		return nil, fmt.Errorf("search menu: %w", err)
	}

	items := make([]MenuItem, 0, len(offerings))
	for _, offering := range offerings {
		categoryName := "Uncategorized"
		if offering.Category != nil {
			categoryName = offering.Category.Name
		}

		ingredientNames := make([]string, 0, len(offering.Ingredients))
		allergenSet := make(map[string]bool)
		for _, assoc := range offering.Ingredients {
			ingredientNames = append(ingredientNames, assoc.Ingredient.Name)
			for _, attr := range assoc.Ingredient.Attributes {
				allergenSet[attr.Name] = true
			}
		}
		allergens := make([]string, 0, len(allergenSet))
		for name := range allergenSet {
			allergens = append(allergens, name)
		}
		sort.Strings(allergens)

		items = append(items, MenuItem{
			Category:    categoryName,
			Food:        offering.Name,
			Price:       offering.Price,
			Description: offering.Description,
			Ingredients: ingredientNames,
			Allergens:   allergens,
		})
	}
	return items, nil
}

// Allergens reports allergen attributes for the offering named itemName.
// A nil check list returns the item's full deduplicated allergen set. A
// non-nil list (even an empty one) returns one containment statement per
// requested allergen, in the caller's order.
func (s *CatalogService) Allergens(itemName string, allergensToCheck []string) ([]string, error) {
	var offering models.Offering
	err := s.DB.Where("name = ?", itemName).First(&offering).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFoundError{Message: fmt.Sprintf("Offering '%s' not found.", itemName)}
	}
	if err != nil {
		return nil, fmt.Errorf("find offering: %w", err)
	}

	var actual []string
	err = s.DB.Model(&models.Attribute{}).
		Distinct().
		Joins("JOIN ingredient_attributes ia ON ia.attribute_id = attributes.attribute_id").
		Joins("JOIN offering_ingredients oi ON oi.ingredient_id = ia.ingredient_id").
		Where("oi.offering_id = ?", offering.ID).
		Pluck("attributes.attribute_name", &actual).Error
	if err != nil {
		return nil, fmt.Errorf("collect allergens: %w", err)
	}

	if allergensToCheck == nil {
		return actual, nil
	}

	actualSet := make(map[string]bool, len(actual))
	for _, name := range actual {
		actualSet[name] = true
	}
	results := make([]string, 0, len(allergensToCheck))
	for _, allergen := range allergensToCheck {
		if actualSet[allergen] {
			results = append(results, fmt.Sprintf("%s contains %s", offering.Name, allergen))
		} else {
			results = append(results, fmt.Sprintf("%s does not contain %s", offering.Name, allergen))
		}
	}
	return results, nil
}
