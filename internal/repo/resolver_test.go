package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-commerce-backend/internal/domain"
)

func TestResolveFirstRungSucceeds(t *testing.T) {
	r := NewResolver(zap.NewNop())
	var attempts []RelationSet

	out, err := Resolve(r, orderLadder, func(rels RelationSet) (string, error) {
		attempts = append(attempts, rels)
		return "full", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "full", out)
	require.Len(t, attempts, 1)
	assert.Equal(t, RelationSet{"User", "Items", "Items.Product"}, attempts[0])
}

func TestResolveDegradesRungByRung(t *testing.T) {
	r := NewResolver(zap.NewNop())
	boom := errors.New("missing column")
	var attempts []RelationSet

	out, err := Resolve(r, orderLadder, func(rels RelationSet) (int, error) {
		attempts = append(attempts, rels)
		if len(rels) > 0 {
			return 0, boom
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, out)
	// every rung down to the bare read was tried, in order
	require.Len(t, attempts, 3)
	assert.Equal(t, RelationSet{"User", "Items", "Items.Product"}, attempts[0])
	assert.Equal(t, RelationSet{"User"}, attempts[1])
	assert.Empty(t, attempts[2])
}

func TestResolveNotFoundStopsImmediately(t *testing.T) {
	r := NewResolver(zap.NewNop())
	attempts := 0

	_, err := Resolve(r, orderLadder, func(RelationSet) (*struct{}, error) {
		attempts++
		return nil, domain.ErrNotFound
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, attempts, "an absent row is absent at every richness")
}

func TestResolveFloorFailureSurfaces(t *testing.T) {
	r := NewResolver(zap.NewNop())
	boom := errors.New("connection reset")

	_, err := Resolve(r, categoryLadder, func(RelationSet) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestResolveCancellationStopsLadder(t *testing.T) {
	r := NewResolver(zap.NewNop())
	attempts := 0

	_, err := Resolve(r, orderLadder, func(RelationSet) (string, error) {
		attempts++
		return "", fmt.Errorf("query aborted: %w", context.Canceled)
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts, "a dead context fails every rung the same way")
}

func TestResolveDeadlineStopsLadder(t *testing.T) {
	r := NewResolver(zap.NewNop())
	attempts := 0

	_, err := Resolve(r, orderItemLadder, func(RelationSet) (int, error) {
		attempts++
		return 0, context.DeadlineExceeded
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, attempts)
}

func TestResolvePartialExpansionStillDegrades(t *testing.T) {
	r := NewResolver(zap.NewNop())
	boom := errors.New("relation drift")

	out, err := Resolve(r, orderItemLadder, func(rels RelationSet) (string, error) {
		if len(rels) == 2 {
			return "", boom
		}
		if len(rels) == 1 {
			return "partial", nil
		}
		return "bare", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "partial", out, "degradation stops at the first rung that works")
}
