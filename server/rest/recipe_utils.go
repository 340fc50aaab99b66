package rest

import (
	"fmt"
	"time"

	"github.com/Luismorlan/cookmux/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	minCookingTime      = 1
	minIngredientAmount = 1
)

type recipeIngredientInput struct {
	Id     string `json:"id"`
	Amount int    `json:"amount"`
}

type recipeInput struct {
	Name        string                  `json:"name"`
	Image       string                  `json:"image"`
	Text        string                  `json:"text"`
	CookingTime int                     `json:"cooking_time"`
	TagIds      []string                `json:"tags"`
	Ingredients []recipeIngredientInput `json:"ingredients"`
}

// validateRecipePayload checks the shape of a candidate recipe payload before
// any persistence is attempted: tags and ingredients must be non-empty and
// pairwise distinct (ingredients by identity, not amount), amounts and cooking
// time must meet the minimum. All complaints are collected per field so the
// caller gets a complete report. No side effects.
func validateRecipePayload(input *recipeInput) error {
	validationErr := NewValidationError()

	if input.Name == "" {
		validationErr.Add("name", "name must not be empty")
	}
	if input.Text == "" {
		validationErr.Add("text", "text must not be empty")
	}
	if input.CookingTime < minCookingTime {
		validationErr.Add("cooking_time", fmt.Sprintf("cooking time must be at least %d", minCookingTime))
	}

	if len(input.TagIds) == 0 {
		validationErr.Add("tags", "tags must not be empty")
	}
	seenTags := map[string]bool{}
	for _, tagId := range input.TagIds {
		if seenTags[tagId] {
			validationErr.Add("tags", fmt.Sprintf("tag %s is listed more than once", tagId))
		}
		seenTags[tagId] = true
	}

	if len(input.Ingredients) == 0 {
		validationErr.Add("ingredients", "ingredients must not be empty")
	}
	seenIngredients := map[string]bool{}
	for _, item := range input.Ingredients {
		if seenIngredients[item.Id] {
			validationErr.Add("ingredients", fmt.Sprintf("ingredient %s is listed more than once", item.Id))
		}
		seenIngredients[item.Id] = true
		if item.Amount < minIngredientAmount {
			validationErr.Add("ingredients", fmt.Sprintf("amount of ingredient %s must be at least %d", item.Id, minIngredientAmount))
		}
	}

	if validationErr.HasErrors() {
		return validationErr
	}
	return nil
}

// resolveRecipeRefs loads the referenced tag and ingredient catalog rows,
// failing with NotFoundError on the first reference that does not exist.
func resolveRecipeRefs(db *gorm.DB, input *recipeInput) ([]*model.Tag, []*model.Ingredient, error) {
	var tags []*model.Tag
	if err := db.Where("id IN ?", input.TagIds).Find(&tags).Error; err != nil {
		return nil, nil, err
	}
	if len(tags) != len(input.TagIds) {
		found := map[string]bool{}
		for _, tag := range tags {
			found[tag.Id] = true
		}
		for _, tagId := range input.TagIds {
			if !found[tagId] {
				return nil, nil, &NotFoundError{Resource: "tag", Id: tagId}
			}
		}
	}

	ingredientIds := []string{}
	for _, item := range input.Ingredients {
		ingredientIds = append(ingredientIds, item.Id)
	}
	var ingredients []*model.Ingredient
	if err := db.Where("id IN ?", ingredientIds).Find(&ingredients).Error; err != nil {
		return nil, nil, err
	}
	if len(ingredients) != len(ingredientIds) {
		found := map[string]bool{}
		for _, ingredient := range ingredients {
			found[ingredient.Id] = true
		}
		for _, ingredientId := range ingredientIds {
			if !found[ingredientId] {
				return nil, nil, &NotFoundError{Resource: "ingredient", Id: ingredientId}
			}
		}
	}

	return tags, ingredients, nil
}

// insertRecipeIngredients writes one association row per validated
// (ingredient, amount) pair. The composite primary key rejects a duplicate
// pair even if it slips past validation.
func insertRecipeIngredients(tx *gorm.DB, recipeId string, items []recipeIngredientInput) error {
	rows := []model.RecipeIngredient{}
	for _, item := range items {
		rows = append(rows, model.RecipeIngredient{
			RecipeID:     recipeId,
			IngredientID: item.Id,
			CreatedAt:    time.Now(),
			Amount:       item.Amount,
		})
	}
	return tx.Create(&rows).Error
}

// loadRecipe reads a recipe with its author and tags resolved.
func loadRecipe(db *gorm.DB, recipeId string) (*model.Recipe, error) {
	var recipe model.Recipe
	result := db.Preload("Tags").Preload("Author").Where("id = ?", recipeId).First(&recipe)
	if result.RowsAffected != 1 {
		return nil, &NotFoundError{Resource: "recipe", Id: recipeId}
	}
	return &recipe, nil
}

// createRecipe validates the payload, then atomically inserts the recipe row,
// its tag associations and its (ingredient, amount) rows. Nothing is persisted
// on a rejected payload.
func createRecipe(db *gorm.DB, authorId string, input *recipeInput) (*model.Recipe, error) {
	if err := validateRecipePayload(input); err != nil {
		return nil, err
	}
	tags, _, err := resolveRecipeRefs(db, input)
	if err != nil {
		return nil, err
	}

	if input.Image == "" {
		validationErr := NewValidationError()
		validationErr.Add("image", "image must not be empty")
		return nil, validationErr
	}
	imageUrl, err := saveBase64Image("recipes", input.Image)
	if err != nil {
		validationErr := NewValidationError()
		validationErr.Add("image", err.Error())
		return nil, validationErr
	}

	recipe := model.Recipe{
		Id:          uuid.New().String(),
		CreatedAt:   time.Now(),
		AuthorID:    authorId,
		Name:        input.Name,
		ImageUrl:    imageUrl,
		Text:        input.Text,
		CookingTime: input.CookingTime,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		return insertRecipeIngredients(tx, recipe.Id, input.Ingredients)
	})
	if err != nil {
		return nil, err
	}

	return loadRecipe(db, recipe.Id)
}

// updateRecipe validates, then atomically rewrites the recipe: scalar fields
// are updated and the tag and ingredient association sets are cleared and
// re-inserted from the validated payload. Replace-all, not merge: omitting a
// previously attached tag or ingredient removes it. Only the author may
// update.
func updateRecipe(db *gorm.DB, recipe *model.Recipe, actorId string, input *recipeInput) (*model.Recipe, error) {
	if recipe.AuthorID != actorId {
		return nil, &PermissionError{Message: "only the author can modify this recipe"}
	}

	if err := validateRecipePayload(input); err != nil {
		return nil, err
	}
	tags, _, err := resolveRecipeRefs(db, input)
	if err != nil {
		return nil, err
	}

	imageUrl := recipe.ImageUrl
	if input.Image != "" {
		if imageUrl, err = saveBase64Image("recipes", input.Image); err != nil {
			validationErr := NewValidationError()
			validationErr.Add("image", err.Error())
			return nil, validationErr
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.Id).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := insertRecipeIngredients(tx, recipe.Id, input.Ingredients); err != nil {
			return err
		}
		return tx.Model(recipe).Updates(map[string]interface{}{
			"name":         input.Name,
			"image_url":    imageUrl,
			"text":         input.Text,
			"cooking_time": input.CookingTime,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return loadRecipe(db, recipe.Id)
}

// deleteRecipe removes a recipe together with its association rows and any
// favorite or cart entries pointing at it. Only the author may delete.
func deleteRecipe(db *gorm.DB, recipe *model.Recipe, actorId string) error {
	if recipe.AuthorID != actorId {
		return &PermissionError{Message: "only the author can delete this recipe"}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.Id).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.Id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.Id).Delete(&model.ShoppingCartEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
}
