package rest

import (
	"testing"
	"time"

	"github.com/Luismorlan/cookmux/model"
	"github.com/Luismorlan/cookmux/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClampRecipesLimit(t *testing.T) {
	require.Equal(t, 0, clampRecipesLimit(-5))
	require.Equal(t, 0, clampRecipesLimit(0))
	require.Equal(t, 3, clampRecipesLimit(3))
}

func seedAuthorWithRecipes(t *testing.T, db *gorm.DB, author *model.User, names []string) []*model.Recipe {
	t.Helper()
	tag := utils.TestCreateTag(t, db, "dinner-"+author.Username, "dinner-"+author.Username)
	eggs := utils.TestCreateIngredient(t, db, "eggs-"+author.Username, "pcs")

	recipes := []*model.Recipe{}
	base := time.Now().Add(-time.Hour)
	for i, name := range names {
		recipe := utils.TestCreateRecipe(t, db, author, name, []*model.Tag{tag},
			[]utils.TestIngredientAmount{{Ingredient: eggs, Amount: 1}})
		// spread creation times so newest-first ordering is deterministic
		require.NoError(t, db.Model(recipe).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
		recipes = append(recipes, recipe)
	}
	return recipes
}

func TestBuildAuthorFeedNewestFirstCapped(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	reader := utils.TestCreateUser(t, db, "reader")
	author := utils.TestCreateUser(t, db, "author")
	recipes := seedAuthorWithRecipes(t, db, author, []string{"first", "second", "third"})

	feed, err := buildAuthorFeed(db, author, reader.Id, 2)
	require.NoError(t, err)
	require.Equal(t, int64(3), feed.RecipesCount)
	require.Len(t, feed.Recipes, 2)
	require.Equal(t, recipes[2].Id, feed.Recipes[0].Id)
	require.Equal(t, recipes[1].Id, feed.Recipes[1].Id)
}

func TestBuildAuthorFeedZeroLimitMeansNoRecipes(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	reader := utils.TestCreateUser(t, db, "reader")
	author := utils.TestCreateUser(t, db, "author")
	seedAuthorWithRecipes(t, db, author, []string{"first", "second"})

	for _, limit := range []int{0, -7} {
		feed, err := buildAuthorFeed(db, author, reader.Id, limit)
		require.NoError(t, err)
		require.Equal(t, int64(2), feed.RecipesCount)
		require.Empty(t, feed.Recipes)
	}
}

func TestListSubscriptionsReturnsFeedPerAuthor(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	reader := utils.TestCreateUser(t, db, "reader")
	alice := utils.TestCreateUser(t, db, "alice")
	bob := utils.TestCreateUser(t, db, "bob")
	stranger := utils.TestCreateUser(t, db, "stranger")
	seedAuthorWithRecipes(t, db, alice, []string{"soup"})
	seedAuthorWithRecipes(t, db, bob, []string{"stew", "roast"})
	seedAuthorWithRecipes(t, db, stranger, []string{"salad"})

	utils.TestSubscribe(t, db, reader, alice)
	utils.TestSubscribe(t, db, reader, bob)

	feeds, total, err := listSubscriptions(db, reader.Id, defaultRecipesLimit, 0, 25)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, feeds, 2)
	// subscription order, not alphabetical
	require.Equal(t, alice.Id, feeds[0].Id)
	require.Equal(t, bob.Id, feeds[1].Id)
	require.True(t, feeds[0].IsSubscribed)
	require.Len(t, feeds[1].Recipes, 2)
	require.Equal(t, int64(2), feeds[1].RecipesCount)
}

func TestListSubscriptionsPaginatesAtAuthorLevel(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	reader := utils.TestCreateUser(t, db, "reader")
	alice := utils.TestCreateUser(t, db, "alice")
	bob := utils.TestCreateUser(t, db, "bob")
	utils.TestSubscribe(t, db, reader, alice)
	utils.TestSubscribe(t, db, reader, bob)

	feeds, total, err := listSubscriptions(db, reader.Id, defaultRecipesLimit, 1, 1)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, feeds, 1)
	require.Equal(t, bob.Id, feeds[0].Id)
}
