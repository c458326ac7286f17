package models

type MenuCategory struct {
	ID     uint   `gorm:"column:category_id;primaryKey" json:"category_id"`
	Name   string `gorm:"type:varchar(100);unique;not null" json:"name"`
	IsFood bool   `gorm:"not null" json:"is_food"`
}

func (MenuCategory) TableName() string {
	return "menu_categories"
}
