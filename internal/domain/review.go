package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review lives in the document store. ProductID and UserID point at relational
// rows but carry no store-enforced integrity (advisory cross-store reference).
type Review struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       string             `bson:"userId" json:"userId"`
	ProductID    int                `bson:"productId" json:"productId"`
	Rating       int                `bson:"rating" json:"rating"`
	Title        string             `bson:"title" json:"title"`
	Comment      string             `bson:"comment" json:"comment"`
	IsVerified   bool               `bson:"isVerified" json:"isVerified"`
	HelpfulCount int                `bson:"helpfulCount" json:"helpfulCount"`
	Images       []string           `bson:"images,omitempty" json:"images,omitempty"`
	Metadata     map[string]any     `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type ReviewRepository interface {
	Create(ctx context.Context, r *Review) error
	FindByID(ctx context.Context, id string) (*Review, error)
	FindAll(ctx context.Context, limit int64) ([]Review, error)
	FindByProduct(ctx context.Context, productID int, limit int64) ([]Review, error)
	FindByUser(ctx context.Context, userID string, limit int64) ([]Review, error)
	Update(ctx context.Context, id string, changes map[string]any) (*Review, error)
	// AdjustHelpfulCount atomically adds delta (±1) to helpfulCount; the count
	// never goes below zero.
	AdjustHelpfulCount(ctx context.Context, id string, delta int) (*Review, error)
	Delete(ctx context.Context, id string) (bool, error)
}
