package rest

import (
	"net/http"

	"github.com/Luismorlan/cookmux/model"
	"github.com/gin-gonic/gin"
)

// The tag and ingredient catalogs are read-only over the API; entries are
// managed out of band.

func (h *Handler) ListTags(c *gin.Context) {
	tags := []*model.Tag{}
	if err := h.DB.Order("name").Find(&tags).Error; err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *Handler) GetTag(c *gin.Context) {
	var tag model.Tag
	if result := h.DB.Where("id = ?", c.Param("id")).First(&tag); result.RowsAffected != 1 {
		writeError(c, &NotFoundError{Resource: "tag", Id: c.Param("id")})
		return
	}
	c.JSON(http.StatusOK, &tag)
}

// ListIngredients supports a case-insensitive name prefix filter for the
// typeahead in recipe editing.
func (h *Handler) ListIngredients(c *gin.Context) {
	query := h.DB.Order("name")
	if name := c.Query("name"); name != "" {
		query = query.Where("name ILIKE ?", name+"%")
	}

	ingredients := []*model.Ingredient{}
	if err := query.Find(&ingredients).Error; err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredients)
}

func (h *Handler) GetIngredient(c *gin.Context) {
	var ingredient model.Ingredient
	if result := h.DB.Where("id = ?", c.Param("id")).First(&ingredient); result.RowsAffected != 1 {
		writeError(c, &NotFoundError{Resource: "ingredient", Id: c.Param("id")})
		return
	}
	c.JSON(http.StatusOK, &ingredient)
}
