package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Luismorlan/cookmux/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type signUpInput struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

type loginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type avatarInput struct {
	Avatar string `json:"avatar" binding:"required"`
}

// SignUp registers a new account. Email and username collisions surface as
// ConflictError through the unique indexes.
func (h *Handler) SignUp(c *gin.Context) {
	var input signUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErr := NewValidationError()
		validationErr.Add("payload", err.Error())
		writeError(c, validationErr)
		return
	}

	var existing int64
	h.DB.Model(&model.User{}).Where("email = ? OR username = ?", input.Email, input.Username).Count(&existing)
	if existing > 0 {
		writeError(c, &ConflictError{Message: "email or username already taken"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(c, err)
		return
	}

	user := model.User{
		Id:           uuid.New().String(),
		CreatedAt:    time.Now(),
		Email:        input.Email,
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hash),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         user.Id,
		"email":      user.Email,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	})
}

// Login verifies credentials and issues an opaque bearer token.
func (h *Handler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErr := NewValidationError()
		validationErr.Add("payload", err.Error())
		writeError(c, validationErr)
		return
	}

	var user model.User
	result := h.DB.Where("email = ?", input.Email).First(&user)
	if result.RowsAffected != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid credentials"})
		return
	}

	token := model.AuthToken{
		Token:     uuid.New().String(),
		UserID:    user.Id,
		CreatedAt: time.Now(),
	}
	if err := h.DB.Create(&token).Error; err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"auth_token": token.Token})
}

// Logout revokes every token of the acting user.
func (h *Handler) Logout(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.DB.Where("user_id = ?", userId).Delete(&model.AuthToken{}).Error; err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Me(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}

	var user model.User
	result := h.DB.Where("id = ?", userId).First(&user)
	if result.RowsAffected != 1 {
		writeError(c, &NotFoundError{Resource: "user", Id: userId})
		return
	}

	view, err := buildUserView(h.DB, &user, userId)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) GetUser(c *gin.Context) {
	targetId := c.Param("id")

	var user model.User
	result := h.DB.Where("id = ?", targetId).First(&user)
	if result.RowsAffected != 1 {
		writeError(c, &NotFoundError{Resource: "user", Id: targetId})
		return
	}

	view, err := buildUserView(h.DB, &user, currentUserId(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PutAvatar stores a new profile image reference for the acting user.
func (h *Handler) PutAvatar(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}

	var input avatarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErr := NewValidationError()
		validationErr.Add("avatar", "avatar must not be empty")
		writeError(c, validationErr)
		return
	}

	avatarUrl, err := saveBase64Image("avatars", input.Avatar)
	if err != nil {
		validationErr := NewValidationError()
		validationErr.Add("avatar", err.Error())
		writeError(c, validationErr)
		return
	}

	if err := h.DB.Model(&model.User{}).Where("id = ?", userId).Update("avatar_url", avatarUrl).Error; err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar": avatarUrl})
}

func (h *Handler) DeleteAvatar(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}

	var user model.User
	result := h.DB.Where("id = ?", userId).First(&user)
	if result.RowsAffected != 1 {
		writeError(c, &NotFoundError{Resource: "user", Id: userId})
		return
	}
	if user.AvatarUrl == "" {
		validationErr := NewValidationError()
		validationErr.Add("avatar", "no avatar to delete")
		writeError(c, validationErr)
		return
	}

	if err := h.DB.Model(&user).Update("avatar_url", "").Error; err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Subscribe adds the target author to the acting user's subscriptions and
// returns the author's feed entry. recipes_limit caps the embedded recipes.
func (h *Handler) Subscribe(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}

	view, err := addToCollection(h.DB, subscriptionKind, userId, c.Param("id"), recipesLimitParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}

	if err := removeFromCollection(h.DB, subscriptionKind, userId, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "unsubscribed"})
}

// ListSubscriptions returns a paginated feed of every author the acting user
// subscribes to.
func (h *Handler) ListSubscriptions(c *gin.Context) {
	userId, ok := requireUser(c)
	if !ok {
		return
	}

	offset, pageSize := pageParams(c)
	feeds, total, err := listSubscriptions(h.DB, userId, recipesLimitParam(c), offset, pageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": total, "results": feeds})
}

// recipesLimitParam reads the recipes_limit query param, defaulting to 10.
// Zero and negative values are honored as "no recipes", not treated as unset.
func recipesLimitParam(c *gin.Context) int {
	raw := c.Query("recipes_limit")
	if raw == "" {
		return defaultRecipesLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return defaultRecipesLimit
	}
	return clampRecipesLimit(limit)
}
