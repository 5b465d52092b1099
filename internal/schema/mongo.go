package schema

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-commerce-backend/internal/core/database"
)

// Collections manages the document side of the schema lifecycle.
type Collections struct {
	db *mongo.Database
}

func NewCollections(db *mongo.Database) *Collections { return &Collections{db: db} }

var _ docStore = (*Collections)(nil)

// ClearCollections removes every document but keeps collections, validators
// and indexes.
func (c *Collections) ClearCollections(ctx context.Context) error {
	for _, name := range []string{database.CollReviews, database.CollLogs} {
		if _, err := c.db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			return err
		}
	}
	return nil
}

// DropCollections removes both collections and their indexes entirely.
// Dropping an absent collection is a no-op in the driver.
func (c *Collections) DropCollections(ctx context.Context) error {
	for _, name := range []string{database.CollReviews, database.CollLogs} {
		if err := c.db.Collection(name).Drop(ctx); err != nil {
			return err
		}
	}
	return nil
}

// EnsureCollections provisions the reviews collection with its JSON-schema
// validator, the logs collection with its retention TTL index, and the
// supporting query indexes. Already-existing collections are tolerated.
func (c *Collections) EnsureCollections(ctx context.Context) error {
	reviewValidator := bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"userId", "productId", "rating", "title", "comment"},
			"properties": bson.M{
				"userId":    bson.M{"bsonType": "string"},
				"productId": bson.M{"bsonType": []string{"int", "long", "double"}},
				"rating": bson.M{
					"bsonType": []string{"int", "long", "double"},
					"minimum":  1,
					"maximum":  5,
				},
				"title":        bson.M{"bsonType": "string"},
				"comment":      bson.M{"bsonType": "string"},
				"helpfulCount": bson.M{"bsonType": []string{"int", "long"}, "minimum": 0},
			},
		},
	}
	err := c.db.CreateCollection(ctx, database.CollReviews,
		options.CreateCollection().SetValidator(reviewValidator))
	if err != nil && !isNamespaceExists(err) {
		return err
	}
	if err := c.db.CreateCollection(ctx, database.CollLogs); err != nil && !isNamespaceExists(err) {
		return err
	}

	reviewIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "productId", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := c.db.Collection(database.CollReviews).Indexes().CreateMany(ctx, reviewIdx); err != nil {
		return err
	}

	logIdx := []mongo.IndexModel{
		// expired documents are swept by the store once expiresAt passes
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{Keys: bson.D{{Key: "level", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := c.db.Collection(database.CollLogs).Indexes().CreateMany(ctx, logIdx); err != nil {
		return err
	}
	return nil
}

// NamespaceExists (48): the collection is already there.
func isNamespaceExists(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return ce.Code == 48
	}
	return false
}
