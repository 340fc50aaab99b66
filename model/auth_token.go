package model

import "time"

// AuthToken is an opaque bearer token issued at login and revoked at logout.
// The request middleware resolves it to the acting user.
type AuthToken struct {
	Token     string `gorm:"primaryKey"`
	UserID    string `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time
}
