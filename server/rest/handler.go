package rest

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Handler carries the shared dependencies of all REST handlers. It serves as
// dependency injection for the API surface, add anything handlers require
// here.
type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// RegisterRoutes mounts the API. requireAuth must resolve a valid identity or
// abort; optionalAuth resolves one when present and lets anonymous requests
// through.
func (h *Handler) RegisterRoutes(router *gin.Engine, requireAuth gin.HandlerFunc, optionalAuth gin.HandlerFunc) {
	api := router.Group("/api")

	api.POST("/users/", h.SignUp)
	api.POST("/auth/token/login/", h.Login)
	api.POST("/auth/token/logout/", requireAuth, h.Logout)
	api.GET("/users/me/", requireAuth, h.Me)
	api.PUT("/users/me/avatar/", requireAuth, h.PutAvatar)
	api.DELETE("/users/me/avatar/", requireAuth, h.DeleteAvatar)
	api.GET("/users/subscriptions/", requireAuth, h.ListSubscriptions)
	api.GET("/users/:id/", optionalAuth, h.GetUser)
	api.POST("/users/:id/subscribe/", requireAuth, h.Subscribe)
	api.DELETE("/users/:id/subscribe/", requireAuth, h.Unsubscribe)

	api.GET("/tags/", h.ListTags)
	api.GET("/tags/:id/", h.GetTag)
	api.GET("/ingredients/", h.ListIngredients)
	api.GET("/ingredients/:id/", h.GetIngredient)

	api.GET("/recipes/", optionalAuth, h.ListRecipes)
	api.POST("/recipes/", requireAuth, h.CreateRecipe)
	api.GET("/recipes/download_shopping_cart/", requireAuth, h.DownloadShoppingCart)
	api.GET("/recipes/:id/", optionalAuth, h.GetRecipe)
	api.PATCH("/recipes/:id/", requireAuth, h.UpdateRecipe)
	api.DELETE("/recipes/:id/", requireAuth, h.DeleteRecipe)
	api.GET("/recipes/:id/get-link/", h.GetRecipeLink)
	api.POST("/recipes/:id/favorite/", requireAuth, h.AddFavorite)
	api.DELETE("/recipes/:id/favorite/", requireAuth, h.RemoveFavorite)
	api.POST("/recipes/:id/shopping_cart/", requireAuth, h.AddToShoppingCart)
	api.DELETE("/recipes/:id/shopping_cart/", requireAuth, h.RemoveFromShoppingCart)

	// short links minted by GetRecipeLink resolve outside the /api group
	router.GET("/s/:id", h.ResolveRecipeLink)
}

// currentUserId returns the acting user's id resolved by the auth middleware,
// or empty for anonymous requests.
func currentUserId(c *gin.Context) string {
	return c.Request.Header.Get("sub")
}

// requireUser is a backstop for auth-required handlers running behind a
// passthrough middleware (-no_auth).
func requireUser(c *gin.Context) (string, bool) {
	userId := currentUserId(c)
	if userId == "" {
		c.JSON(401, gin.H{"detail": "authentication required"})
		return "", false
	}
	return userId, true
}

// pageParams reads page/limit query params, clamping the page size.
func pageParams(c *gin.Context) (offset int, pageSize int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err = strconv.Atoi(c.Query("limit"))
	if err != nil || pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return (page - 1) * pageSize, pageSize
}
