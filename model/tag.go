package model

// Tag is a catalog entity attached to recipes, created independently of any
// recipe. Name and slug are unique, slug is pattern-constrained at creation.
type Tag struct {
	Id   string `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex"`
	Slug string `json:"slug" gorm:"uniqueIndex"`
}
