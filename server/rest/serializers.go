package rest

import (
	"github.com/Luismorlan/cookmux/model"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// Response shapes. Per-viewer flags (is_subscribed, is_favorited,
// is_in_shopping_cart) are computed with existence checks against the
// relations at read time, never stored on the row.

type userView struct {
	Id           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Avatar       string `json:"avatar"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type ingredientLineView struct {
	Id              string `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type recipeView struct {
	Id               string                `json:"id"`
	Tags             []*model.Tag          `json:"tags"`
	Author           *userView             `json:"author"`
	Ingredients      []*ingredientLineView `json:"ingredients"`
	IsFavorited      bool                  `json:"is_favorited"`
	IsInShoppingCart bool                  `json:"is_in_shopping_cart"`
	Name             string                `json:"name"`
	Image            string                `json:"image"`
	Text             string                `json:"text"`
	CookingTime      int                   `json:"cooking_time"`
}

// recipeSummaryView is the short representation used in favorites, shopping
// cart and subscription payloads.
type recipeSummaryView struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func pairExists(db *gorm.DB, relation interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.Model(relation).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func buildUserView(db *gorm.DB, user *model.User, viewerId string) (*userView, error) {
	var view userView
	if err := copier.Copy(&view, user); err != nil {
		return nil, err
	}
	view.Avatar = user.AvatarUrl

	if viewerId != "" && viewerId != user.Id {
		subscribed, err := pairExists(db, &model.Subscription{}, "subscriber_id = ? AND author_id = ?", viewerId, user.Id)
		if err != nil {
			return nil, err
		}
		view.IsSubscribed = subscribed
	}
	return &view, nil
}

// recipeIngredientLines reads the (ingredient, amount) association rows of a
// recipe with the catalog fields resolved.
func recipeIngredientLines(db *gorm.DB, recipeId string) ([]*ingredientLineView, error) {
	lines := []*ingredientLineView{}
	err := db.Model(&model.RecipeIngredient{}).
		Select("ingredients.id as id, ingredients.name as name, ingredients.measurement_unit as measurement_unit, recipe_ingredients.amount as amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_ingredients.recipe_id = ?", recipeId).
		Order("ingredients.name").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// buildRecipeView assembles the full read representation of a recipe. The
// recipe must be loaded with Author and Tags resolved.
func buildRecipeView(db *gorm.DB, recipe *model.Recipe, viewerId string) (*recipeView, error) {
	author, err := buildUserView(db, &recipe.Author, viewerId)
	if err != nil {
		return nil, err
	}

	lines, err := recipeIngredientLines(db, recipe.Id)
	if err != nil {
		return nil, err
	}

	view := recipeView{
		Id:          recipe.Id,
		Tags:        recipe.Tags,
		Author:      author,
		Ingredients: lines,
		Name:        recipe.Name,
		Image:       recipe.ImageUrl,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
	}
	if view.Tags == nil {
		view.Tags = []*model.Tag{}
	}

	if viewerId != "" {
		if view.IsFavorited, err = pairExists(db, &model.Favorite{}, "user_id = ? AND recipe_id = ?", viewerId, recipe.Id); err != nil {
			return nil, err
		}
		if view.IsInShoppingCart, err = pairExists(db, &model.ShoppingCartEntry{}, "user_id = ? AND recipe_id = ?", viewerId, recipe.Id); err != nil {
			return nil, err
		}
	}
	return &view, nil
}

func buildRecipeSummaryView(recipe *model.Recipe) *recipeSummaryView {
	return &recipeSummaryView{
		Id:          recipe.Id,
		Name:        recipe.Name,
		Image:       recipe.ImageUrl,
		CookingTime: recipe.CookingTime,
	}
}
