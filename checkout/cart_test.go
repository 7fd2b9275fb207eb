package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddMergesSameLine(t *testing.T) {
	cart := NewCart()
	cart.Add(Item{ProductID: 1, VendorID: 9, Name: "Tee", Price: 10, Quantity: 1})
	cart.Add(Item{ProductID: 1, VendorID: 9, Name: "Tee", Price: 10, Quantity: 2})
	cart.Add(Item{ProductID: 1, VendorID: 9, Name: "Tee", Price: 10, Quantity: 1, Variant: &Variant{Size: "L"}})

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, 40.0, cart.Total())
}

func TestCartUpdateQuantityClampsToOne(t *testing.T) {
	cart := NewCart(Item{ProductID: 1, Price: 5, Quantity: 4})

	assert.True(t, cart.UpdateQuantity(1, nil, 0))
	assert.Equal(t, 1, cart.Items()[0].Quantity)

	assert.True(t, cart.UpdateQuantity(1, nil, -3))
	assert.Equal(t, 1, cart.Items()[0].Quantity)

	assert.True(t, cart.UpdateQuantity(1, nil, 6))
	assert.Equal(t, 6, cart.Items()[0].Quantity)

	assert.False(t, cart.UpdateQuantity(2, nil, 6))
}

func TestCartRemoveAndClear(t *testing.T) {
	cart := NewCart(
		Item{ProductID: 1, Quantity: 1},
		Item{ProductID: 2, Quantity: 1},
		Item{ProductID: 2, Quantity: 1, Variant: &Variant{Color: "Red"}},
	)

	cart.Remove(2, nil)
	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, uint(1), items[0].ProductID)
	assert.Equal(t, "Red", items[1].Variant.Color)

	cart.Clear()
	assert.Empty(t, cart.Items())
}
