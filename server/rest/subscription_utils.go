package rest

import (
	"github.com/Luismorlan/cookmux/model"
	"gorm.io/gorm"
)

const defaultRecipesLimit = 10

// authorFeedView is the subscription payload for one followed author: profile
// fields plus a capped list of their most recent recipes and the total count.
type authorFeedView struct {
	userView
	Recipes      []*recipeSummaryView `json:"recipes"`
	RecipesCount int64                `json:"recipes_count"`
}

// clampRecipesLimit treats zero and negative limits as "no recipes returned",
// never as "unlimited".
func clampRecipesLimit(limit int) int {
	if limit < 0 {
		return 0
	}
	return limit
}

// buildAuthorFeed assembles the feed entry of a single author as seen by
// viewerId. Recipes are ordered newest-first and capped at limit.
func buildAuthorFeed(db *gorm.DB, author *model.User, viewerId string, limit int) (*authorFeedView, error) {
	profile, err := buildUserView(db, author, viewerId)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&model.Recipe{}).Where("author_id = ?", author.Id).Count(&count).Error; err != nil {
		return nil, err
	}

	limit = clampRecipesLimit(limit)
	summaries := []*recipeSummaryView{}
	if limit > 0 {
		var recipes []*model.Recipe
		if err := db.Where("author_id = ?", author.Id).Order("created_at desc").Limit(limit).Find(&recipes).Error; err != nil {
			return nil, err
		}
		for _, recipe := range recipes {
			summaries = append(summaries, buildRecipeSummaryView(recipe))
		}
	}

	return &authorFeedView{
		userView:     *profile,
		Recipes:      summaries,
		RecipesCount: count,
	}, nil
}

// listSubscriptions returns one feed entry per author the user subscribes to,
// in subscription order, paginated at the author level.
func listSubscriptions(db *gorm.DB, userId string, recipesLimit int, offset int, pageSize int) ([]*authorFeedView, int64, error) {
	var total int64
	if err := db.Model(&model.Subscription{}).Where("subscriber_id = ?", userId).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var authors []*model.User
	err := db.Model(&model.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.subscriber_id = ?", userId).
		Order("subscriptions.created_at asc").
		Offset(offset).
		Limit(pageSize).
		Find(&authors).Error
	if err != nil {
		return nil, 0, err
	}

	feeds := []*authorFeedView{}
	for _, author := range authors {
		feed, err := buildAuthorFeed(db, author, userId, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		feeds = append(feeds, feed)
	}
	return feeds, total, nil
}
