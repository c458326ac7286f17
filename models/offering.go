package models

// Offering is a purchasable menu item. Quantity is the live stock counter:
// placements decrement it, pending cancellations credit it back.
type Offering struct {
	ID          uint          `gorm:"column:offering_id;primaryKey" json:"offering_id"`
	Name        string        `gorm:"type:varchar(255);not null;index" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Price       float64       `gorm:"type:decimal(10,2);not null" json:"price"`
	CategoryID  *uint         `json:"category_id,omitempty"`
	Category    *MenuCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
	Recommended bool          `gorm:"not null;default:false" json:"recommended"`
	Quantity    int           `gorm:"not null;default:0" json:"quantity"`

	Ingredients []OfferingIngredient `gorm:"foreignKey:OfferingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"ingredients,omitempty"`
}

// OfferingIngredient links an offering to one of its ingredients. IsRemovable
// is the only place removability is recorded; it is read at placement time.
type OfferingIngredient struct {
	OfferingID   uint       `gorm:"primaryKey" json:"offering_id"`
	IngredientID uint       `gorm:"primaryKey" json:"ingredient_id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"ingredient"`
	IsRemovable  bool       `gorm:"not null" json:"is_removable"`
}

func (OfferingIngredient) TableName() string {
	return "offering_ingredients"
}
