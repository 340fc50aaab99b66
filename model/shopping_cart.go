package model

import "time"

/*

ShoppingCartEntry is a relation of a user putting a recipe into the shopping
cart. The cart is the input of the shopping list aggregation.

UserID: user id
RecipeID: recipe id
CreatedAt: time when relation is created

*/
type ShoppingCartEntry struct {
	UserID    string `gorm:"primaryKey"`
	RecipeID  string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (ShoppingCartEntry) TableName() string {
	return "shopping_cart_entries"
}
