package domain

import (
	"testing"

	"github.com/buildmatpro/proforma-service/pkg/errs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProduct(id string, price string) Product {
	return Product{
		ID:           id,
		Name:         "Product " + id,
		Category:     "Category",
		Manufacturer: "Maker",
		Price:        decimal.RequireFromString(price),
		Unit:         "piece",
		Image:        "https://example.com/" + id + ".jpg",
	}
}

func TestToggleItemPairRestoresMembership(t *testing.T) {
	products := []Product{
		sampleProduct("1", "45.00"),
		sampleProduct("2", "120.50"),
		sampleProduct("3", "12.00"),
	}

	for _, product := range products {
		inv := NewInvoice(CustomerDetails{})

		added := inv.ToggleItem(product)
		assert.True(t, added)
		require.Len(t, inv.Items, 1)
		assert.Equal(t, int64(1), inv.Items[0].Quantity)

		added = inv.ToggleItem(product)
		assert.False(t, added)
		assert.Empty(t, inv.Items)
	}
}

func TestToggleItemNeverDuplicatesIDs(t *testing.T) {
	inv := NewInvoice(CustomerDetails{})
	product := sampleProduct("1", "45.00")

	inv.ToggleItem(product)
	inv.ToggleItem(sampleProduct("2", "10.00"))
	inv.ToggleItem(product)
	inv.ToggleItem(product)

	seen := map[string]int{}
	for _, item := range inv.Items {
		seen[item.ID]++
	}
	for id, count := range seen {
		assert.Equalf(t, 1, count, "product %s appears %d times", id, count)
	}
}

func TestSetQuantityLastWriteWins(t *testing.T) {
	inv := NewInvoice(CustomerDetails{})
	inv.ToggleItem(sampleProduct("1", "45.00"))

	for _, qty := range []int64{3, 7, 2, 9} {
		require.NoError(t, inv.SetQuantity("1", qty))
	}

	assert.Equal(t, int64(9), inv.Items[0].Quantity)
}

func TestSetQuantityRejectsNonPositive(t *testing.T) {
	inv := NewInvoice(CustomerDetails{})
	inv.ToggleItem(sampleProduct("1", "45.00"))

	testCases := []struct {
		name string
		qty  int64
	}{
		{"zero", 0},
		{"negative", -4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := inv.SetQuantity("1", tc.qty)
			assert.ErrorIs(t, err, errs.ErrInvalidQuantity)
			assert.Equal(t, int64(1), inv.Items[0].Quantity)
		})
	}
}

func TestSetQuantityUnknownItem(t *testing.T) {
	inv := NewInvoice(CustomerDetails{})

	err := inv.SetQuantity("missing", 2)
	assert.ErrorIs(t, err, errs.ErrItemNotFound)
}

func TestRemoveItemAbsentIsNoOp(t *testing.T) {
	inv := NewInvoice(CustomerDetails{})
	inv.ToggleItem(sampleProduct("1", "45.00"))

	inv.RemoveItem("does-not-exist")

	require.Len(t, inv.Items, 1)
	assert.Equal(t, "1", inv.Items[0].ID)
}

func TestSetItemImageAndDisplayImage(t *testing.T) {
	inv := NewInvoice(CustomerDetails{})
	product := sampleProduct("1", "45.00")
	inv.ToggleItem(product)

	item, ok := inv.FindItem("1")
	require.True(t, ok)
	assert.Equal(t, product.Image, item.DisplayImage())

	require.NoError(t, inv.SetItemImage("1", "data:image/jpeg;base64,QUJD"))

	item, _ = inv.FindItem("1")
	assert.Equal(t, "data:image/jpeg;base64,QUJD", item.DisplayImage())
	assert.Equal(t, product.Image, item.Image)

	assert.ErrorIs(t, inv.SetItemImage("missing", "x"), errs.ErrItemNotFound)
}

func TestComputeTotalsScenario(t *testing.T) {
	inv := NewInvoice(CustomerDetails{})
	inv.ToggleItem(sampleProduct("1", "45.00"))
	inv.ToggleItem(sampleProduct("3", "12.00"))
	require.NoError(t, inv.SetQuantity("1", 2))

	totals := inv.ComputeTotals(decimal.RequireFromString("0.15"))

	assert.Equal(t, "102.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "15.30", totals.Tax.StringFixed(2))
	assert.Equal(t, "117.30", totals.Total.StringFixed(2))
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	inv := NewInvoice(CustomerDetails{})

	totals := inv.ComputeTotals(decimal.RequireFromString("0.15"))

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}

// StringFixed rounds half away from zero, so a raw subtotal at the .005
// boundary must land on the upper cent.
func TestTotalsRoundingAtHalfCentBoundary(t *testing.T) {
	inv := NewInvoice(CustomerDetails{})
	inv.ToggleItem(sampleProduct("1", "44.445"))
	require.NoError(t, inv.SetQuantity("1", 3))

	totals := inv.ComputeTotals(decimal.RequireFromString("0.15"))

	assert.Equal(t, "133.335", totals.Subtotal.String())
	assert.Equal(t, "133.34", totals.Subtotal.StringFixed(2))
}

func TestToggleVisibility(t *testing.T) {
	inv := NewInvoice(CustomerDetails{})

	defaults := DefaultVisibilitySettings()
	assert.True(t, defaults.ShowManufacturer)
	assert.True(t, defaults.ShowDescription)
	assert.True(t, defaults.ShowImages)
	assert.True(t, defaults.ShowUnit)
	assert.False(t, defaults.ShowNotes)

	require.NoError(t, inv.ToggleVisibility(FlagManufacturer))
	assert.False(t, inv.Visibility.ShowManufacturer)

	require.NoError(t, inv.ToggleVisibility(FlagNotes))
	assert.True(t, inv.Visibility.ShowNotes)

	assert.ErrorIs(t, inv.ToggleVisibility("bogus"), errs.ErrClient)
}
