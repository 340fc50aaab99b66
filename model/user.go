package model

import "time"

/*

User is an account that authors recipes and keeps the per-user derived
collections (favorites, shopping cart, subscriptions).

Id: primary key, use to identify a user
CreatedAt: time when entity is created
Email: login identifier, unique
Username: public handle, unique
PasswordHash: bcrypt hash, never serialized
AvatarUrl: opaque reference into the image store

*/
type User struct {
	Id           string    `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"-"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	Username     string    `json:"username" gorm:"uniqueIndex"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	AvatarUrl    string    `json:"avatar"`
}
