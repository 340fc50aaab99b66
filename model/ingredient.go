package model

// Ingredient is a catalog entity reusable across recipes. The measurement
// unit is free text and participates in shopping list grouping.
type Ingredient struct {
	Id              string `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"uniqueIndex"`
	MeasurementUnit string `json:"measurement_unit"`
}
