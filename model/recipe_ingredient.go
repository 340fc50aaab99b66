package model

import "time"

/*

RecipeIngredient is a "many-to-many" relation of an ingredient in a recipe.

RecipeID: recipe id
IngredientID: ingredient id
CreatedAt: time when relation is created

Amount: how much of the ingredient the recipe needs, positive

The composite primary key enforces (recipe, ingredient) uniqueness at the
storage layer, not just at validation time. Rows are deleted together with
their recipe.

*/
type RecipeIngredient struct {
	RecipeID     string `gorm:"primaryKey"`
	IngredientID string `gorm:"primaryKey"`
	CreatedAt    time.Time
	Amount       int
}
