package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-commerce-backend/internal/domain"
)

func pgError(code string) error {
	return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code, Message: "constraint violated"})
}

func writeException(code int) error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: code, Message: "server rejected"}},
	}
}

func TestClassifyPostgresCodes(t *testing.T) {
	c := NewClassifier(zap.NewNop())

	cases := []struct {
		name string
		code string
		want error
	}{
		{"unique violation", "23505", domain.ErrConflict},
		{"foreign key violation", "23503", domain.ErrInvalidReference},
		{"check violation", "23514", domain.ErrInvalidInput},
		{"not null violation", "23502", domain.ErrInvalidInput},
		{"unknown code", "42P01", domain.ErrInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, c.Classify(pgError(tc.code)), tc.want)
		})
	}
}

func TestClassifyMongoCodes(t *testing.T) {
	c := NewClassifier(zap.NewNop())

	assert.ErrorIs(t, c.Classify(writeException(11000)), domain.ErrConflict)
	assert.ErrorIs(t, c.Classify(writeException(121)), domain.ErrInvalidInput)
	assert.ErrorIs(t, c.Classify(writeException(8000)), domain.ErrInternal)
	assert.ErrorIs(t, c.Classify(mongo.CommandError{Code: 121}), domain.ErrInvalidInput)
}

func TestClassifyPrefersWriteErrorOverWriteConcern(t *testing.T) {
	c := NewClassifier(zap.NewNop())

	err := mongo.WriteException{
		WriteConcernError: &mongo.WriteConcernError{Code: 64, Message: "waiting for replication"},
		WriteErrors:       mongo.WriteErrors{{Code: 121, Message: "Document failed validation"}},
	}
	assert.ErrorIs(t, c.Classify(err), domain.ErrInvalidInput)
}

func TestClassifyNotFound(t *testing.T) {
	c := NewClassifier(zap.NewNop())

	assert.ErrorIs(t, c.Classify(gorm.ErrRecordNotFound), domain.ErrNotFound)
	assert.ErrorIs(t, c.Classify(mongo.ErrNoDocuments), domain.ErrNotFound)
}

func TestClassifyPassesThroughClassified(t *testing.T) {
	c := NewClassifier(zap.NewNop())

	wrapped := fmt.Errorf("%w: already mapped", domain.ErrConflict)
	assert.Equal(t, wrapped, c.Classify(wrapped))
	assert.NoError(t, c.Classify(nil))
}

func TestClassifyContextAndUnknown(t *testing.T) {
	c := NewClassifier(zap.NewNop())

	assert.ErrorIs(t, c.Classify(context.DeadlineExceeded), domain.ErrInternal)
	assert.ErrorIs(t, c.Classify(context.Canceled), domain.ErrInternal)
	assert.ErrorIs(t, c.Classify(errors.New("connection refused")), domain.ErrInternal)
}

func TestClassifyNeverLeaksNativeError(t *testing.T) {
	c := NewClassifier(zap.NewNop())

	got := c.Classify(pgError("23505"))
	var pgErr *pgconn.PgError
	// the driver error is flattened to text; only the domain sentinel
	// remains matchable
	assert.False(t, errors.As(got, &pgErr))
	assert.ErrorIs(t, got, domain.ErrConflict)
	assert.Contains(t, got.Error(), "23505")
}
