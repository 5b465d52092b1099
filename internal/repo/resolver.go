package repo

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-commerce-backend/internal/domain"
)

// RelationSet names the associations to expand on one read attempt, as gorm
// preload paths.
type RelationSet []string

func (s RelationSet) apply(q *gorm.DB) *gorm.DB {
	for _, rel := range s {
		q = q.Preload(rel)
	}
	return q
}

// Ladder is an ordered list of relation sets, richest first. The final entry
// must be empty: the bare, relation-free read is the floor and is never
// retried. Making the ladder a value keeps the degradation policy in one
// loop instead of nested retry blocks per entity.
type Ladder []RelationSet

// Ladders for the relation-bearing entities.
var (
	orderLadder     = Ladder{{"User", "Items", "Items.Product"}, {"User"}, nil}
	orderItemLadder = Ladder{{"Product", "Order"}, {"Product"}, nil}
	categoryLadder  = Ladder{{"Products"}, nil}
	productLadder   = Ladder{{"Category"}, nil}
)

// Resolver runs relationship-expanding reads down a ladder so that schema
// drift in an association never turns a read into a hard failure. It applies
// to reads only.
type Resolver struct {
	log *zap.Logger
}

func NewResolver(l *zap.Logger) *Resolver { return &Resolver{log: l} }

// Resolve walks the ladder top down. A not-found result stops immediately:
// the entity is absent at every richness. A cancelled or expired context also
// stops the walk; the ladder never resumes after cancellation. Any other
// failure of a relation-bearing attempt is logged and retried one rung
// narrower. A failure of the floor (or of the last rung) surfaces as-is.
// Callers must treat the returned relations as "at least this rich", never
// as guaranteed-maximal.
func Resolve[T any](r *Resolver, ladder Ladder, attempt func(RelationSet) (T, error)) (T, error) {
	var zero T
	var err error
	for i, rels := range ladder {
		var out T
		out, err = attempt(rels)
		if err == nil {
			return out, nil
		}
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, domain.ErrNotFound
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}
		if len(rels) == 0 || i == len(ladder)-1 {
			return zero, err
		}
		r.log.Warn("relation expansion failed, retrying with narrower set",
			zap.Strings("relations", rels),
			zap.Error(err))
	}
	if err == nil {
		err = domain.ErrNotFound // empty ladder
	}
	return zero, err
}
