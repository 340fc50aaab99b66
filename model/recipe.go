package model

import "time"

/*

Recipe is a user-authored recipe with its tag and ingredient composition.

Id: primary key, use to identify a recipe
CreatedAt: time when entity is created, default listing order is newest-first
AuthorID:
Author: user who created this recipe, "belongs-to" relation, cascade on delete
Name: recipe's display name
ImageUrl: opaque reference into the image store
Text: cooking instructions
CookingTime: minutes, positive
Tags: tags attached to this recipe, "many-to-many" relation
Ingredients: ingredients of this recipe, "many-to-many" relation through
             RecipeIngredient which carries the amount

*/
type Recipe struct {
	Id          string `gorm:"primaryKey"`
	CreatedAt   time.Time
	AuthorID    string
	Author      User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Name        string
	ImageUrl    string
	Text        string
	CookingTime int
	Tags        []*Tag        `json:"tags" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE;"`
	Ingredients []*Ingredient `json:"ingredients" gorm:"many2many:recipe_ingredients;"`
}
