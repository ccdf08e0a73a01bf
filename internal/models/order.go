package models

import "time"

// OrderStatus is the delivery state of an order.
type OrderStatus int

const (
	OrderStatusOutForDelivery OrderStatus = 0
	OrderStatusDelivered      OrderStatus = 1
)

// OrderItem is one line of a placed order. It copies the menu item and quantity
// from the cart at the time the order was placed.
type OrderItem struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    *uint     `json:"-" gorm:"index"`
	MenuItemID uint      `json:"menu_item" gorm:"not null;index"`
	MenuItem   *MenuItem `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Quantity   int       `json:"quantity" gorm:"not null;default:1"`
}

// Order represents a customer order.
type Order struct {
	ID             uint        `json:"id" gorm:"primaryKey"`
	UserID         uint        `json:"user" gorm:"not null;index"`
	User           *User       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	DeliveryCrewID *uint       `json:"delivery_crew" gorm:"index"`
	DeliveryCrew   *User       `json:"-" gorm:"foreignKey:DeliveryCrewID;constraint:OnDelete:SET NULL"`
	Status         OrderStatus `json:"status" gorm:"not null;default:0"`
	Items          []OrderItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time   `json:"-"`
	UpdatedAt      time.Time   `json:"-"`
}
