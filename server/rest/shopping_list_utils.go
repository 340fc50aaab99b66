package rest

import (
	"bytes"
	"fmt"

	"github.com/Luismorlan/cookmux/model"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

const shoppingListTitle = "Shopping list:"

// shoppingListLine is one aggregated group of the shopping list: the summed
// amount of an ingredient across every recipe in the user's cart.
type shoppingListLine struct {
	Name            string
	MeasurementUnit string
	Total           int
}

// buildShoppingList collects the ingredient rows of every recipe currently in
// the user's shopping cart, grouped by (ingredient name, measurement unit)
// with amounts summed inside each group. Ingredients sharing a name but not a
// unit stay separate lines. An empty cart yields an empty slice, not an error.
func buildShoppingList(db *gorm.DB, userId string) ([]shoppingListLine, error) {
	lines := []shoppingListLine{}
	err := db.Model(&model.RecipeIngredient{}).
		Select("ingredients.name as name, ingredients.measurement_unit as measurement_unit, SUM(recipe_ingredients.amount) as total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_cart_entries ON shopping_cart_entries.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_cart_entries.user_id = ?", userId).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// renderShoppingListPDF renders the aggregated lines into a downloadable PDF
// with a fixed header and one line per ingredient group. An empty list renders
// a valid header-only document.
func renderShoppingListPDF(lines []shoppingListLine) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	translate := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, shoppingListTitle)
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range lines {
		pdf.Cell(0, 8, translate(fmt.Sprintf("%s (%s) — %d", line.Name, line.MeasurementUnit, line.Total)))
		pdf.Ln(8)
	}

	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
