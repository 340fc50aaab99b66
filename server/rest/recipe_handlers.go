package rest

import (
	"fmt"
	"net/http"

	"github.com/Luismorlan/cookmux/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// recipeListQuery applies the listing filters: author, tag slugs, and the
// per-viewer is_favorited / is_in_shopping_cart flags.
func (h *Handler) recipeListQuery(c *gin.Context, viewerId string) *gorm.DB {
	query := h.DB.Model(&model.Recipe{})

	if author := c.Query("author"); author != "" {
		query = query.Where("recipes.author_id = ?", author)
	}

	if slugs, ok := c.GetQueryArray("tags"); ok && len(slugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", slugs)
	}

	if viewerId != "" {
		if c.Query("is_favorited") == "1" {
			query = query.
				Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
				Where("favorites.user_id = ?", viewerId)
		}
		if c.Query("is_in_shopping_cart") == "1" {
			query = query.
				Joins("JOIN shopping_cart_entries ON shopping_cart_entries.recipe_id = recipes.id").
				Where("shopping_cart_entries.user_id = ?", viewerId)
		}
	}

	return query
}

// ListRecipes returns a paginated newest-first listing.
func (h *Handler) ListRecipes(c *gin.Context) {
	viewerId := currentUserId(c)
	offset, pageSize := pageParams(c)

	var total int64
	if err := h.recipeListQuery(c, viewerId).Distinct("recipes.id").Count(&total).Error; err != nil {
		writeError(c, err)
		return
	}

	var recipes []*model.Recipe
	err := h.recipeListQuery(c, viewerId).
		Distinct("recipes.*").
		Preload("Tags").
		Preload("Author").
		Order("recipes.created_at desc").
		Offset(offset).
		Limit(pageSize).
		Find(&recipes).Error
	if err != nil {
		writeError(c, err)
		return
	}

	views := []*recipeView{}
	for _, recipe := range recipes {
		view, err := buildRecipeView(h.DB, recipe, viewerId)
		if err != nil {
			writeError(c, err)
			return
		}
		views = append(views, view)
	}
	c.JSON(http.StatusOK, gin.H{"count": total, "results": views})
}

func (h *Handler) GetRecipe(c *gin.Context) {
	recipe, err := loadRecipe(h.DB, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	view, err := buildRecipeView(h.DB, recipe, currentUserId(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) CreateRecipe(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}

	var input recipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErr := NewValidationError()
		validationErr.Add("payload", err.Error())
		writeError(c, validationErr)
		return
	}

	recipe, err := createRecipe(h.DB, userId, &input)
	if err != nil {
		writeError(c, err)
		return
	}

	view, err := buildRecipeView(h.DB, recipe, userId)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) UpdateRecipe(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}

	recipe, err := loadRecipe(h.DB, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	var input recipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErr := NewValidationError()
		validationErr.Add("payload", err.Error())
		writeError(c, validationErr)
		return
	}

	updated, err := updateRecipe(h.DB, recipe, userId, &input)
	if err != nil {
		writeError(c, err)
		return
	}

	view, err := buildRecipeView(h.DB, updated, userId)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) DeleteRecipe(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}

	recipe, err := loadRecipe(h.DB, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	if err := deleteRecipe(h.DB, recipe, userId); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetRecipeLink returns a stable short link for sharing a recipe.
func (h *Handler) GetRecipeLink(c *gin.Context) {
	recipe, err := loadRecipe(h.DB, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	c.JSON(http.StatusOK, gin.H{
		"short-link": fmt.Sprintf("%s://%s/s/%s", scheme, c.Request.Host, recipe.Id),
	})
}

// ResolveRecipeLink redirects a short link to the recipe page.
func (h *Handler) ResolveRecipeLink(c *gin.Context) {
	recipe, err := loadRecipe(h.DB, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/recipes/"+recipe.Id+"/")
}

func (h *Handler) AddFavorite(c *gin.Context) {
	h.addCollectionEntry(c, favoriteKind)
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	h.removeCollectionEntry(c, favoriteKind)
}

func (h *Handler) AddToShoppingCart(c *gin.Context) {
	h.addCollectionEntry(c, shoppingCartKind)
}

func (h *Handler) RemoveFromShoppingCart(c *gin.Context) {
	h.removeCollectionEntry(c, shoppingCartKind)
}

func (h *Handler) addCollectionEntry(c *gin.Context, kind collectionKind) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}

	view, err := addToCollection(h.DB, kind, userId, c.Param("id"), defaultRecipesLimit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) removeCollectionEntry(c *gin.Context, kind collectionKind) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}

	if err := removeFromCollection(h.DB, kind, userId, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "removed"})
}

// DownloadShoppingCart aggregates the acting user's cart into a PDF shopping
// list attachment.
func (h *Handler) DownloadShoppingCart(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}

	lines, err := buildShoppingList(h.DB, userId)
	if err != nil {
		writeError(c, err)
		return
	}

	document, err := renderShoppingListPDF(lines)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_cart.pdf"`)
	c.Data(http.StatusOK, "application/pdf", document)
}
