package model

import "time"

/*

Subscription is a relation of one user following another user's recipes.

SubscriberID: the following user
AuthorID: the followed user
CreatedAt: time when relation is created

The composite primary key makes the (subscriber, author) pair unique at the
storage layer, so concurrent duplicate subscribes can never produce two rows.
Self-subscription is additionally rejected by a CHECK constraint added during
migration.

*/
type Subscription struct {
	SubscriberID string `gorm:"primaryKey"`
	AuthorID     string `gorm:"primaryKey"`
	CreatedAt    time.Time
}
