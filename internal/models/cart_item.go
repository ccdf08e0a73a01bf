package models

// MaxCartQuantity caps the quantity of a single cart line.
const MaxCartQuantity = 32767

// CartItem is a pending selection of a menu item by a user.
// There is at most one row per (user, menu item).
type CartItem struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user" gorm:"not null;uniqueIndex:idx_cart_user_item"`
	User       *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	MenuItemID uint      `json:"menu_item" gorm:"not null;uniqueIndex:idx_cart_user_item"`
	MenuItem   *MenuItem `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Quantity   int       `json:"quantity" gorm:"not null;default:1"`
}
