package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-commerce-backend/internal/domain"
)

const defaultDocLimit = 100

type ReviewRepo struct {
	coll *mongo.Collection
}

func NewReviewRepo(db *mongo.Database, collName string) *ReviewRepo {
	return &ReviewRepo{coll: db.Collection(collName)}
}

var _ domain.ReviewRepository = (*ReviewRepo)(nil)

func (r *ReviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	now := time.Now().UTC()
	rv.CreatedAt = now
	rv.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, rv)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rv.ID = oid
	}
	return nil
}

func (r *ReviewRepo) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var rv domain.Review
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&rv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepo) FindAll(ctx context.Context, limit int64) ([]domain.Review, error) {
	return r.find(ctx, bson.M{}, limit)
}

func (r *ReviewRepo) FindByProduct(ctx context.Context, productID int, limit int64) ([]domain.Review, error) {
	return r.find(ctx, bson.M{"productId": productID}, limit)
}

func (r *ReviewRepo) FindByUser(ctx context.Context, userID string, limit int64) ([]domain.Review, error) {
	return r.find(ctx, bson.M{"userId": userID}, limit)
}

func (r *ReviewRepo) find(ctx context.Context, filter bson.M, limit int64) ([]domain.Review, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(capLimit(limit))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	reviews := []domain.Review{}
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepo) Update(ctx context.Context, id string, changes map[string]any) (*domain.Review, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range changes {
		set[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rv domain.Review
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&rv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// AdjustHelpfulCount is a single atomic store-side $inc, never a
// read-modify-write; concurrent adjustments therefore never lose updates.
// Decrements carry a floor filter so the count cannot go negative.
func (r *ReviewRepo) AdjustHelpfulCount(ctx context.Context, id string, delta int) (*domain.Review, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	filter := helpfulFilter(oid, delta)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rv domain.Review
	err = r.coll.FindOneAndUpdate(ctx, filter, helpfulUpdate(delta), opts).Decode(&rv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if delta < 0 {
			// Either absent or already at the floor; a read disambiguates.
			return r.FindByID(ctx, id)
		}
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepo) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return false, err
	}
	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func helpfulFilter(oid primitive.ObjectID, delta int) bson.M {
	filter := bson.M{"_id": oid}
	if delta < 0 {
		filter["helpfulCount"] = bson.M{"$gt": 0}
	}
	return filter
}

func helpfulUpdate(delta int) bson.M {
	return bson.M{"$inc": bson.M{"helpfulCount": delta}}
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed document id %q", domain.ErrInvalidInput, id)
	}
	return oid, nil
}

func capLimit(limit int64) int64 {
	if limit <= 0 {
		return defaultDocLimit
	}
	return limit
}
