package models

// Category groups menu items. It cannot be deleted while menu items reference it.
type Category struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Slug  string `json:"slug" gorm:"type:varchar(255);index"`
	Title string `json:"title" gorm:"type:varchar(255);not null;index"`
}
