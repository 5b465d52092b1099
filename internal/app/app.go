package app

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-commerce-backend/internal/core/auth"
	"go-commerce-backend/internal/core/cache"
	"go-commerce-backend/internal/core/config"
	"go-commerce-backend/internal/core/database"
	"go-commerce-backend/internal/repo"
	"go-commerce-backend/internal/schema"
	"go-commerce-backend/internal/service"
	"go-commerce-backend/internal/transport/http/handler"
	mdw "go-commerce-backend/internal/transport/http/middleware"
)

// App holds the wired object graph shared by the storefront and admin
// binaries.
type App struct {
	Handlers   *handler.Handlers
	JWT        *auth.JWTer
	RequestLog mdw.RequestRecorder
}

// MustBuild connects both stores and wires repositories, facade and
// handlers. Connection failure is fatal; there is nothing useful either
// binary can do without its stores.
func MustBuild(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, func()) {
	db := mustOpenDB(cfg, log)
	log.Info("postgres connected")

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	mclient, mdb, err := database.NewMongo(connCtx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal("mongo connect", zap.Error(err))
	}
	log.Info("mongo connected", zap.String("database", cfg.Mongo.Database))

	var ch *cache.Cache
	if cfg.Redis.Addr != "" {
		ch = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}

	res := repo.NewResolver(log)
	users := repo.NewUserRepo(db)
	categories := repo.NewCategoryRepo(db, res)
	products := repo.NewProductRepo(db, res)
	orders := repo.NewOrderRepo(db, res)
	orderItems := repo.NewOrderItemRepo(db, res)
	reviews := repo.NewReviewRepo(mdb, database.CollReviews)
	logs := repo.NewLogRepo(mdb, database.CollLogs)

	svc := service.New(service.Deps{
		Users:      users,
		Categories: categories,
		Products:   products,
		Orders:     orders,
		OrderItems: orderItems,
		Reviews:    reviews,
		Logs:       logs,
		Lifecycle:  schema.NewManager(db, schema.NewCollections(mdb), log),
		Seeder:     schema.NewSeeder(db, reviews, logs, log),
		Classifier: repo.NewClassifier(log),
		Logger:     log,
	})

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	h := &handler.Handlers{
		Svc:    svc,
		Health: service.NewHealthChecker(db, mdb, log),
		Cache:  ch,
		JWT:    jwter,
		Log:    log,
	}

	shutdown := func() {
		dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dcancel()
		_ = mclient.Disconnect(dctx)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	return &App{Handlers: h, JWT: jwter, RequestLog: logs}, shutdown
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		DSN:            cfg.DB.DSN,
		MaxOpenConns:   cfg.DB.MaxOpenConns,
		MaxIdleConns:   cfg.DB.MaxIdleConns,
		ConnTimeoutSec: cfg.DB.ConnTimeoutSec,
		IdleTimeoutMin: cfg.DB.IdleTimeoutMin,
		LifetimeMin:    cfg.DB.LifetimeMin,
		RequireTLS:     cfg.DB.RequireTLS,
		LogLevel:       cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
