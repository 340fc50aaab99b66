package utils

import (
	"testing"
	"time"

	"github.com/Luismorlan/cookmux/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Seed helpers shared by DB-backed tests. They write rows directly through
// gorm, bypassing the HTTP surface, so tests can arrange state without
// exercising the code under test.

// TestCreateUser inserts a user with the given username and returns it.
func TestCreateUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := model.User{
		Id:        uuid.New().String(),
		CreatedAt: time.Now(),
		Email:     username + "@example.com",
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// TestCreateTag inserts a tag catalog entry and returns it.
func TestCreateTag(t *testing.T, db *gorm.DB, name string, slug string) *model.Tag {
	t.Helper()
	tag := model.Tag{
		Id:   uuid.New().String(),
		Name: name,
		Slug: slug,
	}
	require.NoError(t, db.Create(&tag).Error)
	return &tag
}

// TestCreateIngredient inserts an ingredient catalog entry and returns it.
func TestCreateIngredient(t *testing.T, db *gorm.DB, name string, unit string) *model.Ingredient {
	t.Helper()
	ingredient := model.Ingredient{
		Id:              uuid.New().String(),
		Name:            name,
		MeasurementUnit: unit,
	}
	require.NoError(t, db.Create(&ingredient).Error)
	return &ingredient
}

// TestIngredientAmount pairs a seeded ingredient with an amount for
// TestCreateRecipe.
type TestIngredientAmount struct {
	Ingredient *model.Ingredient
	Amount     int
}

// TestCreateRecipe inserts a recipe together with its tag and ingredient
// associations and returns it.
func TestCreateRecipe(t *testing.T, db *gorm.DB, author *model.User, name string, tags []*model.Tag, ingredients []TestIngredientAmount) *model.Recipe {
	t.Helper()
	recipe := model.Recipe{
		Id:          uuid.New().String(),
		CreatedAt:   time.Now(),
		AuthorID:    author.Id,
		Name:        name,
		ImageUrl:    "/media/recipes/" + name + ".png",
		Text:        "instructions for " + name,
		CookingTime: 30,
	}
	require.NoError(t, db.Create(&recipe).Error)
	if len(tags) > 0 {
		require.NoError(t, db.Model(&recipe).Association("Tags").Append(tags))
	}
	for _, item := range ingredients {
		row := model.RecipeIngredient{
			RecipeID:     recipe.Id,
			IngredientID: item.Ingredient.Id,
			CreatedAt:    time.Now(),
			Amount:       item.Amount,
		}
		require.NoError(t, db.Create(&row).Error)
	}
	return &recipe
}

// TestAddFavorite links a user to a recipe in the favorites relation.
func TestAddFavorite(t *testing.T, db *gorm.DB, user *model.User, recipe *model.Recipe) {
	t.Helper()
	require.NoError(t, db.Create(&model.Favorite{UserID: user.Id, RecipeID: recipe.Id, CreatedAt: time.Now()}).Error)
}

// TestAddToCart links a user to a recipe in the shopping cart relation.
func TestAddToCart(t *testing.T, db *gorm.DB, user *model.User, recipe *model.Recipe) {
	t.Helper()
	require.NoError(t, db.Create(&model.ShoppingCartEntry{UserID: user.Id, RecipeID: recipe.Id, CreatedAt: time.Now()}).Error)
}

// TestSubscribe links a subscriber to an author.
func TestSubscribe(t *testing.T, db *gorm.DB, subscriber *model.User, author *model.User) {
	t.Helper()
	require.NoError(t, db.Create(&model.Subscription{SubscriberID: subscriber.Id, AuthorID: author.Id, CreatedAt: time.Now()}).Error)
}
