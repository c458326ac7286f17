package models

type FAQ struct {
	Key   string `gorm:"type:varchar(255);primaryKey" json:"key"`
	Value string `gorm:"type:text;not null" json:"value"`
}

func (FAQ) TableName() string {
	return "faq"
}
