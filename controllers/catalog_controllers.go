package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tablemate/waiterd/services"
	"github.com/tablemate/waiterd/utils"
)

type CatalogController struct {
	Catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{Catalog: catalog}
}

// GetCategories lists menu categories, optionally filtered by ?is_food.
func (cc *CatalogController) GetCategories(c *gin.Context) {
	isFood, err := parseOptionalBool(c, "is_food")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	categories, err := cc.Catalog.ListCategories(isFood)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}

	utils.RespondJSON(c, http.StatusOK, "List of categories", gin.H{"categories": categories})
}

// GetMenu searches the menu. All filters arrive as query parameters and
// combine with AND semantics.
func (cc *CatalogController) GetMenu(c *gin.Context) {
	isFood, err := parseOptionalBool(c, "is_food")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	isRecommended, err := parseOptionalBool(c, "is_recommended")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	minPrice, err := parseOptionalFloat(c, "min_price")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	maxPrice, err := parseOptionalFloat(c, "max_price")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	items, err := cc.Catalog.SearchMenu(services.MenuFilter{
		IsFood:        isFood,
		Categories:    c.QueryArray("category"),
		IsRecommended: isRecommended,
		MinPrice:      minPrice,
		MaxPrice:      maxPrice,
		MustInclude:   c.QueryArray("must_include"),
		MustExclude:   c.QueryArray("must_exclude"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if items == nil {
		items = []services.MenuItem{}
	}

	utils.RespondJSON(c, http.StatusOK, "Menu search results", gin.H{"items": items})
}

// GetAllergens reports allergens for one menu item. Without
// ?allergens_to_check it returns the item's full allergen set; with it,
// one containment statement per requested allergen.
func (cc *CatalogController) GetAllergens(c *gin.Context) {
	itemName := c.Query("item_name")
	if itemName == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("item_name is required"))
		return
	}

	var check []string
	if values, ok := c.GetQueryArray("allergens_to_check"); ok {
		check = values
	}

	statements, err := cc.Catalog.Allergens(itemName, check)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if statements == nil {
		statements = []string{}
	}

	utils.RespondJSON(c, http.StatusOK, "Allergen information", gin.H{"allergens": statements})
}
