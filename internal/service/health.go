package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-commerce-backend/internal/core/database"
)

// HealthReport summarises connectivity to both stores, with row and
// document counts per table and collection. Partial failure is reported,
// not raised: a broken table shows up as a -1 count.
type HealthReport struct {
	Postgres    bool             `json:"postgres"`
	Mongo       bool             `json:"mongo"`
	Tables      map[string]int64 `json:"tables"`
	Collections map[string]int64 `json:"collections"`
}

func (h HealthReport) Healthy() bool { return h.Postgres && h.Mongo }

// HealthChecker probes the raw connections directly; it sits beside the
// facade rather than behind the repositories so a broken repo layer
// cannot mask a live store.
type HealthChecker struct {
	db  *gorm.DB
	mdb *mongo.Database
	log *zap.Logger
}

func NewHealthChecker(db *gorm.DB, mdb *mongo.Database, log *zap.Logger) *HealthChecker {
	if log == nil {
		log = zap.NewNop()
	}
	return &HealthChecker{db: db, mdb: mdb, log: log}
}

var healthTables = []string{"users", "categories", "products", "orders", "order_items"}

func (h *HealthChecker) Check(ctx context.Context) HealthReport {
	rep := HealthReport{
		Tables:      make(map[string]int64, len(healthTables)),
		Collections: make(map[string]int64, 2),
	}

	if h.db != nil {
		if sqlDB, err := h.db.DB(); err == nil && sqlDB.PingContext(ctx) == nil {
			rep.Postgres = true
		}
		for _, t := range healthTables {
			var n int64
			if err := h.db.WithContext(ctx).Table(t).Count(&n).Error; err != nil {
				h.log.Warn("health: table count failed", zap.String("table", t), zap.Error(err))
				rep.Tables[t] = -1
				continue
			}
			rep.Tables[t] = n
		}
	}

	if h.mdb != nil {
		if err := h.mdb.Client().Ping(ctx, nil); err == nil {
			rep.Mongo = true
		}
		for _, c := range []string{database.CollReviews, database.CollLogs} {
			n, err := h.mdb.Collection(c).CountDocuments(ctx, bson.M{})
			if err != nil {
				h.log.Warn("health: collection count failed", zap.String("collection", c), zap.Error(err))
				rep.Collections[c] = -1
				continue
			}
			rep.Collections[c] = n
		}
	}

	return rep
}
