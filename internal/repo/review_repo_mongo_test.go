package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-commerce-backend/internal/domain"
)

func TestHelpfulFilterIncrement(t *testing.T) {
	oid := primitive.NewObjectID()

	f := helpfulFilter(oid, 1)
	assert.Equal(t, bson.M{"_id": oid}, f, "increments match on id alone")
}

func TestHelpfulFilterDecrementGuardsFloor(t *testing.T) {
	oid := primitive.NewObjectID()

	f := helpfulFilter(oid, -1)
	require.Contains(t, f, "helpfulCount")
	assert.Equal(t, bson.M{"$gt": 0}, f["helpfulCount"],
		"a decrement must not match a zero counter")
}

func TestHelpfulUpdate(t *testing.T) {
	assert.Equal(t, bson.M{"$inc": bson.M{"helpfulCount": -1}}, helpfulUpdate(-1))
	assert.Equal(t, bson.M{"$inc": bson.M{"helpfulCount": 1}}, helpfulUpdate(1))
}

func TestParseObjectID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := parseObjectID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	_, err = parseObjectID("not-a-hex-id")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCapLimit(t *testing.T) {
	assert.Equal(t, int64(defaultDocLimit), capLimit(0))
	assert.Equal(t, int64(defaultDocLimit), capLimit(-5))
	assert.Equal(t, int64(25), capLimit(25))
}
