package rest

import (
	"bytes"
	"testing"

	"github.com/Luismorlan/cookmux/model"
	"github.com/Luismorlan/cookmux/utils"
	"github.com/stretchr/testify/require"
)

func TestBuildShoppingListSumsSameIngredientAcrossRecipes(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	author := utils.TestCreateUser(t, db, "author")
	cook := utils.TestCreateUser(t, db, "cook")
	tag := utils.TestCreateTag(t, db, "dinner", "dinner")
	eggs := utils.TestCreateIngredient(t, db, "eggs", "pcs")
	milk := utils.TestCreateIngredient(t, db, "milk", "ml")

	omelette := utils.TestCreateRecipe(t, db, author, "omelette", []*model.Tag{tag},
		[]utils.TestIngredientAmount{{Ingredient: eggs, Amount: 2}, {Ingredient: milk, Amount: 200}})
	pancakes := utils.TestCreateRecipe(t, db, author, "pancakes", []*model.Tag{tag},
		[]utils.TestIngredientAmount{{Ingredient: eggs, Amount: 3}})
	utils.TestAddToCart(t, db, cook, omelette)
	utils.TestAddToCart(t, db, cook, pancakes)

	lines, err := buildShoppingList(db, cook.Id)
	require.NoError(t, err)
	require.Equal(t, []shoppingListLine{
		{Name: "eggs", MeasurementUnit: "pcs", Total: 5},
		{Name: "milk", MeasurementUnit: "ml", Total: 200},
	}, lines)
}

func TestBuildShoppingListScopedToOwnCart(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	author := utils.TestCreateUser(t, db, "author")
	cook := utils.TestCreateUser(t, db, "cook")
	other := utils.TestCreateUser(t, db, "other")
	tag := utils.TestCreateTag(t, db, "dinner", "dinner")
	eggs := utils.TestCreateIngredient(t, db, "eggs", "pcs")

	omelette := utils.TestCreateRecipe(t, db, author, "omelette", []*model.Tag{tag},
		[]utils.TestIngredientAmount{{Ingredient: eggs, Amount: 2}})
	utils.TestAddToCart(t, db, other, omelette)

	// cook's cart is empty even though another user carted the recipe
	lines, err := buildShoppingList(db, cook.Id)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestRenderShoppingListPDF(t *testing.T) {
	document, err := renderShoppingListPDF([]shoppingListLine{
		{Name: "eggs", MeasurementUnit: "pcs", Total: 5},
		{Name: "milk", MeasurementUnit: "ml", Total: 200},
	})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(document, []byte("%PDF")))

	// an empty cart still renders a valid header-only document
	document, err = renderShoppingListPDF(nil)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(document, []byte("%PDF")))
}
