package inventory

import (
	"context"
	"testing"

	"github.com/campusthreads/marketplace-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjust(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	product, err := Adjust(ctx, f.db, f.vendor.ID, f.product.ID, ActionAdd, 4)
	require.NoError(t, err)
	require.Len(t, product.Variants, 2)
	assert.Equal(t, 9, product.Variants[0].Stock)
	assert.Equal(t, 7, product.Variants[1].Stock)
	assert.Equal(t, 16, product.TotalStock())

	product, err = Adjust(ctx, f.db, f.vendor.ID, f.product.ID, ActionAdd, 0)
	require.NoError(t, err)
	assert.Equal(t, 18, product.TotalStock())

	product, err = Adjust(ctx, f.db, f.vendor.ID, f.product.ID, ActionClear, 0)
	require.NoError(t, err)
	assert.False(t, product.InStock())
}

func TestAdjustRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := Adjust(ctx, f.db, f.vendor.ID+100, f.product.ID, ActionAdd, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Adjust(ctx, f.db, f.vendor.ID, f.product.ID, AdjustAction("double"), 1)
	assert.ErrorIs(t, err, ErrInvalidAdjustment)

	_, err = Adjust(ctx, f.db, f.vendor.ID, f.product.ID, ActionAdd, -2)
	assert.ErrorIs(t, err, ErrInvalidAdjustment)

	assert.Equal(t, []int{5, 3}, testdb.VariantStock(t, f.db, f.product.ID))
}
