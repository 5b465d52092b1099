package repo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-commerce-backend/internal/domain"
)

type LogRepo struct {
	coll *mongo.Collection
}

func NewLogRepo(db *mongo.Database, collName string) *LogRepo {
	return &LogRepo{coll: db.Collection(collName)}
}

var _ domain.LogRepository = (*LogRepo)(nil)

func (r *LogRepo) Create(ctx context.Context, l *domain.Log) error {
	now := time.Now().UTC()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	if l.ExpiresAt.IsZero() {
		l.ExpiresAt = now.Add(domain.LogRetention)
	}
	res, err := r.coll.InsertOne(ctx, l)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		l.ID = oid
	}
	return nil
}

func (r *LogRepo) FindByID(ctx context.Context, id string) (*domain.Log, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var l domain.Log
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LogRepo) Find(ctx context.Context, q domain.LogQuery) ([]domain.Log, error) {
	filter := bson.M{}
	if q.Level != "" {
		filter["level"] = q.Level
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.UserID != "" {
		filter["userId"] = q.UserID
	}
	if !q.From.IsZero() || !q.To.IsZero() {
		created := bson.M{}
		if !q.From.IsZero() {
			created["$gte"] = q.From
		}
		if !q.To.IsZero() {
			created["$lte"] = q.To
		}
		filter["createdAt"] = created
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(capLimit(q.Limit))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	logs := []domain.Log{}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *LogRepo) Update(ctx context.Context, id string, changes map[string]any) (*domain.Log, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{}
	for k, v := range changes {
		set[k] = v
	}
	// 空 $set 会被服务端拒绝，退化成一次普通读取
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var l domain.Log
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LogRepo) Delete(ctx context.Context, id string) (bool, error) {
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

// RecordRequest writes an api_request log entry; failures level it up to
// error automatically.
func (r *LogRepo) RecordRequest(ctx context.Context, method, endpoint string, statusCode int, responseTime int64, userID, ip, userAgent string) error {
	level := domain.LogLevelInfo
	if statusCode >= 400 {
		level = domain.LogLevelError
	}
	return r.Create(ctx, &domain.Log{
		Level:        level,
		Category:     domain.LogCategoryAPIRequest,
		Message:      method + " " + endpoint,
		UserID:       userID,
		IPAddress:    ip,
		UserAgent:    userAgent,
		Endpoint:     endpoint,
		Method:       method,
		StatusCode:   statusCode,
		ResponseTime: responseTime,
	})
}

// RecordError writes an error-level entry with free-form details.
func (r *LogRepo) RecordError(ctx context.Context, message string, details map[string]any, userID string, category domain.LogCategory) error {
	if category == "" {
		category = domain.LogCategoryError
	}
	return r.Create(ctx, &domain.Log{
		Level:        domain.LogLevelError,
		Category:     category,
		Message:      message,
		UserID:       userID,
		ErrorDetails: details,
	})
}
