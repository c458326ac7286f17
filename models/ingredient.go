package models

type Ingredient struct {
	ID   uint   `gorm:"column:ingredient_id;primaryKey" json:"ingredient_id"`
	Name string `gorm:"type:varchar(255);unique;not null" json:"name"`

	Attributes []Attribute `gorm:"many2many:ingredient_attributes" json:"attributes,omitempty"`
}

// Attribute is an allergen or dietary tag attached to ingredients.
type Attribute struct {
	ID   uint   `gorm:"column:attribute_id;primaryKey" json:"attribute_id"`
	Name string `gorm:"column:attribute_name;type:varchar(255);unique;not null" json:"attribute_name"`
}
