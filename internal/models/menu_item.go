package models

import "github.com/shopspring/decimal"

// MenuItem represents a dish on the menu.
type MenuItem struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Title      string          `json:"title" gorm:"type:varchar(255);not null;index"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(6,2);not null;index"`
	Inventory  int16           `json:"inventory" gorm:"not null"`
	CategoryID uint            `json:"-" gorm:"not null;index"`
	Category   Category        `json:"category" gorm:"constraint:OnDelete:RESTRICT"`
}
