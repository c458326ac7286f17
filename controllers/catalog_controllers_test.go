package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tablemate/waiterd/controllers"
	"github.com/tablemate/waiterd/models"
	"github.com/tablemate/waiterd/services"
	"github.com/tablemate/waiterd/utils"
)

// newControllerDB opens an isolated in-memory database with a small menu
// loaded: one pizza (stock 10, removable tomato), one drink.
func newControllerDB(t *testing.T) *gorm.DB {
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
	return db
}

// apiResponse mirrors the envelope every handler writes.
type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, r *gin.Engine, method, url string, body []byte) (int, apiResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return w.Code, resp
}

func setupCatalogRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	catalogCtrl := controllers.NewCatalogController(services.NewCatalogService(db))
	r.GET("/categories", catalogCtrl.GetCategories)
	r.GET("/menu", catalogCtrl.GetMenu)
	r.GET("/menu/allergens", catalogCtrl.GetAllergens)
	return r
}

func TestGetCategories(t *testing.T) {
	utils.InitLogger()
	r := setupCatalogRouter(newControllerDB(t))

	code, resp := doRequest(t, r, http.MethodGet, "/categories?is_food=true", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Status)
	assert.Equal(t, "List of categories", resp.Message)

	var data struct {
		Categories []string `json:"categories"`
	}
	assert.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, []string{"Pizza"}, data.Categories)
}

func TestGetCategoriesInvalidFilter(t *testing.T) {
	r := setupCatalogRouter(newControllerDB(t))

	code, resp := doRequest(t, r, http.MethodGet, "/categories?is_food=banana", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, resp.Status)
	assert.Equal(t, "invalid is_food", resp.Message)
}

func TestGetMenu(t *testing.T) {
	r := setupCatalogRouter(newControllerDB(t))

	code, resp := doRequest(t, r, http.MethodGet, "/menu?must_exclude=Mozzarella", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Menu search results", resp.Message)

	var data struct {
		Items []services.MenuItem `json:"items"`
	}
	assert.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Len(t, data.Items, 1)
	assert.Equal(t, "Negroni", data.Items[0].Food)
}

func TestGetAllergens(t *testing.T) {
	r := setupCatalogRouter(newControllerDB(t))

	code, resp := doRequest(t, r, http.MethodGet, "/menu/allergens?item_name=Margherita+Pizza&allergens_to_check=Nuts", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Allergen information", resp.Message)

	var data struct {
		Allergens []string `json:"allergens"`
	}
	assert.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, []string{"Margherita Pizza does not contain Nuts"}, data.Allergens)
}

func TestGetAllergensValidation(t *testing.T) {
	r := setupCatalogRouter(newControllerDB(t))

	code, resp := doRequest(t, r, http.MethodGet, "/menu/allergens", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "item_name is required", resp.Message)

	code, resp = doRequest(t, r, http.MethodGet, "/menu/allergens?item_name=Ghost+Burger", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Offering 'Ghost Burger' not found.", resp.Message)
}
