package model

import "time"

/*

Favorite is a relation of a user favoriting a recipe.

UserID: user id
RecipeID: recipe id
CreatedAt: time when relation is created

*/
type Favorite struct {
	UserID    string `gorm:"primaryKey"`
	RecipeID  string `gorm:"primaryKey"`
	CreatedAt time.Time
}
