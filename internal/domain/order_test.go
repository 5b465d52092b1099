package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputedTotal(t *testing.T) {
	o := &Order{
		Subtotal:       100.00,
		TaxAmount:      8.50,
		ShippingAmount: 5.00,
		DiscountAmount: 10.00,
	}
	assert.InDelta(t, 103.50, o.ComputedTotal(), MoneyEpsilon)
}

func TestTotalConsistent(t *testing.T) {
	o := &Order{
		Subtotal:       49.99,
		TaxAmount:      4.00,
		ShippingAmount: 0,
		DiscountAmount: 0,
		TotalAmount:    53.99,
	}
	assert.True(t, o.TotalConsistent())

	// sub-cent float drift stays within tolerance
	o.TotalAmount = 53.994
	assert.True(t, o.TotalConsistent())

	o.TotalAmount = 54.99
	assert.False(t, o.TotalConsistent())
}

func TestSnapshotOf(t *testing.T) {
	p := &Product{
		Name:        "Mechanical Keyboard",
		Description: "tenkeyless",
		Price:       89.90,
		Images:      StringList{"kb-front.jpg", "kb-side.jpg"},
	}

	snap := SnapshotOf(p)
	assert.Equal(t, "Mechanical Keyboard", snap["name"])
	assert.Equal(t, 89.90, snap["price"])
	assert.Equal(t, "kb-front.jpg", snap["image"], "only the primary image is kept")
	assert.Equal(t, "tenkeyless", snap["description"])
}

func TestSnapshotOfSparseProduct(t *testing.T) {
	snap := SnapshotOf(&Product{Name: "Cable", Price: 3.50})
	assert.NotContains(t, snap, "image")
	assert.NotContains(t, snap, "description")

	assert.Nil(t, SnapshotOf(nil))
}
