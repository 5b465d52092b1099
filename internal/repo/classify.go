package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-commerce-backend/internal/domain"
)

// Postgres error codes the classifier understands.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// Mongo server error code for a document failing collection validation.
const mongoDocValidationFailure = 121

// Classifier translates store-native failures from both backends into the
// application taxonomy. Classification is by error code, never by message.
type Classifier struct {
	log *zap.Logger
}

func NewClassifier(l *zap.Logger) *Classifier { return &Classifier{log: l} }

func (c *Classifier) Classify(err error) error {
	if err == nil {
		return nil
	}
	// Already classified errors pass through unchanged.
	for _, known := range []error{
		domain.ErrNotFound, domain.ErrConflict, domain.ErrInvalidReference,
		domain.ErrInvalidInput, domain.ErrInternal,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %v", domain.ErrInvalidReference, err)
		case pgCheckViolation, pgNotNullViolation:
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		default:
			c.log.Error("unclassified postgres error",
				zap.String("code", pgErr.Code), zap.Error(err))
			return fmt.Errorf("%w: %v", domain.ErrInternal, err)
		}
	}

	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	}
	if code, ok := mongoErrorCode(err); ok {
		if code == mongoDocValidationFailure {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		c.log.Error("unclassified mongo error", zap.Int("code", code), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}

	c.log.Error("unclassified store error", zap.Error(err))
	return fmt.Errorf("%w: %v", domain.ErrInternal, err)
}

// mongoErrorCode digs the server error code out of the driver's layered
// error shapes.
func mongoErrorCode(err error) (int, bool) {
	var we mongo.WriteException
	if errors.As(err, &we) {
		// write errors carry the rejection reason; the write-concern
		// error is secondary when both are present
		for _, e := range we.WriteErrors {
			return e.Code, true
		}
		if we.WriteConcernError != nil {
			return we.WriteConcernError.Code, true
		}
	}
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, e := range bwe.WriteErrors {
			return e.Code, true
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return int(ce.Code), true
	}
	return 0, false
}
