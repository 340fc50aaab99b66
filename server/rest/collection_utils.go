package rest

import (
	"time"

	"github.com/Luismorlan/cookmux/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// The three toggle relations (favorites, shopping cart, subscriptions) share
// one add/remove manager parameterized by a collectionSpec, instead of three
// copies of the same logic. Each spec maps the kind to its storage relation
// and to the representation of the target returned on a successful add.
//
// Inserts go through ON CONFLICT DO NOTHING against the relation's composite
// primary key, so a race between two identical adds always yields exactly one
// row: the insert that affected no row reports ConflictError.

type collectionKind int

const (
	favoriteKind collectionKind = iota
	shoppingCartKind
	subscriptionKind
)

type collectionSpec struct {
	// name is used in user facing "already added" / "not present" messages.
	name string
	// lookupTarget fails with NotFoundError when the target does not exist.
	lookupTarget func(db *gorm.DB, targetId string) error
	insert       func(db *gorm.DB, ownerId string, targetId string) (int64, error)
	remove       func(db *gorm.DB, ownerId string, targetId string) (int64, error)
	// represent builds the payload of the target returned on a successful add.
	represent func(db *gorm.DB, ownerId string, targetId string, recipesLimit int) (interface{}, error)
}

func lookupRecipe(db *gorm.DB, recipeId string) error {
	var recipe model.Recipe
	if result := db.Where("id = ?", recipeId).First(&recipe); result.RowsAffected != 1 {
		return &NotFoundError{Resource: "recipe", Id: recipeId}
	}
	return nil
}

func lookupUser(db *gorm.DB, userId string) error {
	var user model.User
	if result := db.Where("id = ?", userId).First(&user); result.RowsAffected != 1 {
		return &NotFoundError{Resource: "user", Id: userId}
	}
	return nil
}

func representRecipeSummary(db *gorm.DB, _ string, recipeId string, _ int) (interface{}, error) {
	var recipe model.Recipe
	if result := db.Where("id = ?", recipeId).First(&recipe); result.RowsAffected != 1 {
		return nil, &NotFoundError{Resource: "recipe", Id: recipeId}
	}
	return buildRecipeSummaryView(&recipe), nil
}

func insertPair(db *gorm.DB, row interface{}) (int64, error) {
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	return result.RowsAffected, result.Error
}

var collectionSpecs = map[collectionKind]*collectionSpec{
	favoriteKind: {
		name:         "favorites",
		lookupTarget: lookupRecipe,
		insert: func(db *gorm.DB, ownerId string, targetId string) (int64, error) {
			return insertPair(db, &model.Favorite{UserID: ownerId, RecipeID: targetId, CreatedAt: time.Now()})
		},
		remove: func(db *gorm.DB, ownerId string, targetId string) (int64, error) {
			result := db.Where("user_id = ? AND recipe_id = ?", ownerId, targetId).Delete(&model.Favorite{})
			return result.RowsAffected, result.Error
		},
		represent: representRecipeSummary,
	},
	shoppingCartKind: {
		name:         "shopping cart",
		lookupTarget: lookupRecipe,
		insert: func(db *gorm.DB, ownerId string, targetId string) (int64, error) {
			return insertPair(db, &model.ShoppingCartEntry{UserID: ownerId, RecipeID: targetId, CreatedAt: time.Now()})
		},
		remove: func(db *gorm.DB, ownerId string, targetId string) (int64, error) {
			result := db.Where("user_id = ? AND recipe_id = ?", ownerId, targetId).Delete(&model.ShoppingCartEntry{})
			return result.RowsAffected, result.Error
		},
		represent: representRecipeSummary,
	},
	subscriptionKind: {
		name:         "subscriptions",
		lookupTarget: lookupUser,
		insert: func(db *gorm.DB, ownerId string, targetId string) (int64, error) {
			return insertPair(db, &model.Subscription{SubscriberID: ownerId, AuthorID: targetId, CreatedAt: time.Now()})
		},
		remove: func(db *gorm.DB, ownerId string, targetId string) (int64, error) {
			result := db.Where("subscriber_id = ? AND author_id = ?", ownerId, targetId).Delete(&model.Subscription{})
			return result.RowsAffected, result.Error
		},
		represent: func(db *gorm.DB, ownerId string, targetId string, recipesLimit int) (interface{}, error) {
			var author model.User
			if result := db.Where("id = ?", targetId).First(&author); result.RowsAffected != 1 {
				return nil, &NotFoundError{Resource: "user", Id: targetId}
			}
			return buildAuthorFeed(db, &author, ownerId, recipesLimit)
		},
	},
}

// addToCollection inserts the (owner, target) pair of the given kind and
// returns the representation of the target. A pair that already exists is a
// ConflictError, not a silent success; a missing target is NotFoundError;
// subscribing to oneself is a ValidationError.
func addToCollection(db *gorm.DB, kind collectionKind, ownerId string, targetId string, recipesLimit int) (interface{}, error) {
	spec := collectionSpecs[kind]

	if kind == subscriptionKind && ownerId == targetId {
		validationErr := NewValidationError()
		validationErr.Add("subscribe_to", "subscribing to yourself is not allowed")
		return nil, validationErr
	}

	if err := spec.lookupTarget(db, targetId); err != nil {
		return nil, err
	}

	var inserted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		inserted, err = spec.insert(tx, ownerId, targetId)
		return err
	})
	if err != nil {
		return nil, err
	}
	if inserted == 0 {
		return nil, &ConflictError{Message: "already added to " + spec.name}
	}

	return spec.represent(db, ownerId, targetId, recipesLimit)
}

// removeFromCollection deletes the (owner, target) pair of the given kind.
// Removing a pair that is not present is reported as a not-present rejection,
// not a server error.
func removeFromCollection(db *gorm.DB, kind collectionKind, ownerId string, targetId string) error {
	spec := collectionSpecs[kind]

	if err := spec.lookupTarget(db, targetId); err != nil {
		return err
	}

	var deleted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		deleted, err = spec.remove(tx, ownerId, targetId)
		return err
	})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return &NotFoundError{Resource: "entry in " + spec.name}
	}
	return nil
}
