package repositories

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrCartEmpty     = errors.New("cart is empty")
	ErrCategoryInUse = errors.New("category is referenced by menu items")
	ErrCartLineLimit = errors.New("cart line quantity limit exceeded")
)
