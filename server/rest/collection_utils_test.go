package rest

import (
	"sync"
	"testing"

	"github.com/Luismorlan/cookmux/model"
	"github.com/Luismorlan/cookmux/utils"
	"github.com/stretchr/testify/require"
)

func TestFavoriteAddAndRemove(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	author := utils.TestCreateUser(t, db, "author")
	viewer := utils.TestCreateUser(t, db, "viewer")
	tag := utils.TestCreateTag(t, db, "dinner", "dinner")
	eggs := utils.TestCreateIngredient(t, db, "eggs", "pcs")
	recipe := utils.TestCreateRecipe(t, db, author, "omelette",
		[]*model.Tag{tag}, []utils.TestIngredientAmount{{Ingredient: eggs, Amount: 3}})

	view, err := addToCollection(db, favoriteKind, viewer.Id, recipe.Id, defaultRecipesLimit)
	require.NoError(t, err)
	summary, ok := view.(*recipeSummaryView)
	require.True(t, ok)
	require.Equal(t, recipe.Id, summary.Id)
	require.Equal(t, recipe.Name, summary.Name)

	_, err = addToCollection(db, favoriteKind, viewer.Id, recipe.Id, defaultRecipesLimit)
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Equal(t, int64(1), countRows(t, db, &model.Favorite{}))

	require.NoError(t, removeFromCollection(db, favoriteKind, viewer.Id, recipe.Id))
	require.Equal(t, int64(0), countRows(t, db, &model.Favorite{}))

	var notFound *NotFoundError
	require.ErrorAs(t, removeFromCollection(db, favoriteKind, viewer.Id, recipe.Id), &notFound)
}

func TestShoppingCartAddUnknownRecipe(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	viewer := utils.TestCreateUser(t, db, "viewer")

	_, err := addToCollection(db, shoppingCartKind, viewer.Id, "no-such-recipe", defaultRecipesLimit)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "recipe", notFound.Resource)
	require.Equal(t, int64(0), countRows(t, db, &model.ShoppingCartEntry{}))
}

func TestCollectionsAreIndependentPerKind(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	author := utils.TestCreateUser(t, db, "author")
	viewer := utils.TestCreateUser(t, db, "viewer")
	tag := utils.TestCreateTag(t, db, "dinner", "dinner")
	eggs := utils.TestCreateIngredient(t, db, "eggs", "pcs")
	recipe := utils.TestCreateRecipe(t, db, author, "omelette",
		[]*model.Tag{tag}, []utils.TestIngredientAmount{{Ingredient: eggs, Amount: 3}})

	// the same pair can live in favorites and cart at the same time
	_, err := addToCollection(db, favoriteKind, viewer.Id, recipe.Id, defaultRecipesLimit)
	require.NoError(t, err)
	_, err = addToCollection(db, shoppingCartKind, viewer.Id, recipe.Id, defaultRecipesLimit)
	require.NoError(t, err)

	// removing from one kind leaves the other untouched
	require.NoError(t, removeFromCollection(db, favoriteKind, viewer.Id, recipe.Id))
	require.Equal(t, int64(1), countRows(t, db, &model.ShoppingCartEntry{}))
}

func TestSubscribeToSelfRejected(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	user := utils.TestCreateUser(t, db, "narcissus")

	_, err := addToCollection(db, subscriptionKind, user.Id, user.Id, defaultRecipesLimit)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Fields, "subscribe_to")
	require.Equal(t, int64(0), countRows(t, db, &model.Subscription{}))
}

func TestSubscribeReturnsAuthorFeed(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	reader := utils.TestCreateUser(t, db, "reader")
	author := utils.TestCreateUser(t, db, "author")
	tag := utils.TestCreateTag(t, db, "dinner", "dinner")
	eggs := utils.TestCreateIngredient(t, db, "eggs", "pcs")
	utils.TestCreateRecipe(t, db, author, "omelette",
		[]*model.Tag{tag}, []utils.TestIngredientAmount{{Ingredient: eggs, Amount: 3}})
	utils.TestCreateRecipe(t, db, author, "frittata",
		[]*model.Tag{tag}, []utils.TestIngredientAmount{{Ingredient: eggs, Amount: 5}})

	view, err := addToCollection(db, subscriptionKind, reader.Id, author.Id, defaultRecipesLimit)
	require.NoError(t, err)

	feed, ok := view.(*authorFeedView)
	require.True(t, ok)
	require.Equal(t, author.Id, feed.Id)
	require.True(t, feed.IsSubscribed)
	require.Equal(t, int64(2), feed.RecipesCount)
	require.Len(t, feed.Recipes, 2)
}

func TestConcurrentDuplicateAddsYieldOneRow(t *testing.T) {
	db, _ := utils.CreateTempDB(t)
	author := utils.TestCreateUser(t, db, "author")
	viewer := utils.TestCreateUser(t, db, "viewer")
	tag := utils.TestCreateTag(t, db, "dinner", "dinner")
	eggs := utils.TestCreateIngredient(t, db, "eggs", "pcs")
	recipe := utils.TestCreateRecipe(t, db, author, "omelette",
		[]*model.Tag{tag}, []utils.TestIngredientAmount{{Ingredient: eggs, Amount: 3}})

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := addToCollection(db, favoriteKind, viewer.Id, recipe.Id, defaultRecipesLimit)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		var conflictErr *ConflictError
		require.ErrorAs(t, err, &conflictErr)
		conflicts++
	}
	require.Equal(t, 1, successes)
	require.Equal(t, attempts-1, conflicts)
	require.Equal(t, int64(1), countRows(t, db, &model.Favorite{}))
}
