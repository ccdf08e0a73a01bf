package models

import "time"

// User represents an account that can browse, order or work in the restaurant.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"uniqueIndex;type:varchar(150);not null"`
	Email       string    `json:"email" gorm:"uniqueIndex;type:varchar(254);not null"`
	Password    string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	FirstName   string    `json:"first_name" gorm:"type:varchar(150)"`
	LastName    string    `json:"last_name" gorm:"type:varchar(150)"`
	IsSuperuser bool      `json:"-" gorm:"not null;default:false"`
	Groups      []Group   `json:"-" gorm:"many2many:user_groups;"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Group is a named role membership such as "Manager" or "DeliveryCrew".
type Group struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex;type:varchar(150);not null"`
	Users []User `json:"-" gorm:"many2many:user_groups;"`
}

// InGroup reports whether the user holds a membership with the given name.
// Groups must be preloaded.
func (u *User) InGroup(name string) bool {
	for _, g := range u.Groups {
		if g.Name == name {
			return true
		}
	}
	return false
}
