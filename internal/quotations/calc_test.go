package quotations

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestItemTotal(t *testing.T) {
	tests := []struct {
		name       string
		quantity   float64
		unitCost   float64
		vat        float64
		taxEnabled bool
		want       float64
	}{
		{"no tax", 2, 100, 10, false, 200},
		{"with tax", 2, 100, 10, true, 220},
		{"zero quantity", 0, 100, 10, true, 0},
		{"zero vat with tax", 3, 50, 0, true, 150},
		{"fractional quantity", 1.5, 10, 0, false, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, ItemTotal(tt.quantity, tt.unitCost, tt.vat, tt.taxEnabled), 1e-9)
		})
	}
}

func TestRecomputeItemsOverwritesStaleTotals(t *testing.T) {
	items := []Item{
		{Quantity: 2, UnitCost: 100, VAT: 10, Total: 999},
		{Quantity: 1, UnitCost: 50, VAT: 0, Total: -1},
	}

	RecomputeItems(items, true)

	require.InDelta(t, 220, items[0].Total, 1e-9)
	require.InDelta(t, 50, items[1].Total, 1e-9)
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil, 0, true, false)

	require.Zero(t, totals.Subtotal)
	require.Zero(t, totals.TaxTotal)
	require.Zero(t, totals.DiscountAmount)
	require.Zero(t, totals.Total)
}

func TestComputeTotalsScenario(t *testing.T) {
	items := []Item{{Quantity: 2, UnitCost: 100, VAT: 10}}

	totals := ComputeTotals(items, 0, true, true)

	require.InDelta(t, 200, totals.Subtotal, 1e-9)
	require.InDelta(t, 20, totals.TaxTotal, 1e-9)
	require.Zero(t, totals.DiscountAmount)
	require.InDelta(t, 220, totals.Total, 1e-9)
}

func TestItemTotalsMatchAggregate(t *testing.T) {
	// With tax on and no discount, summing the line totals equals the
	// unrounded grand total.
	items := []Item{
		{Quantity: 2, UnitCost: 100, VAT: 10},
		{Quantity: 3, UnitCost: 49.99, VAT: 18},
		{Quantity: 1, UnitCost: 0.05, VAT: 0},
	}
	RecomputeItems(items, true)

	sum := 0.0
	for _, item := range items {
		sum += item.Total
	}

	totals := ComputeTotals(items, 0, true, false)
	require.InDelta(t, sum, totals.Total, 1e-6)
}

func TestComputeTotalsDiscount(t *testing.T) {
	items := []Item{{Quantity: 4, UnitCost: 25, VAT: 18}}

	totals := ComputeTotals(items, 10, true, false)

	require.InDelta(t, 100, totals.Subtotal, 1e-9)
	require.InDelta(t, 18, totals.TaxTotal, 1e-9)
	require.InDelta(t, 10, totals.DiscountAmount, 1e-9)
	require.InDelta(t, 108, totals.Total, 1e-9)
}

func TestComputeTotalsTaxDisabledIgnoresVAT(t *testing.T) {
	items := []Item{{Quantity: 2, UnitCost: 100, VAT: 18}}

	totals := ComputeTotals(items, 0, false, false)

	require.InDelta(t, 200, totals.Subtotal, 1e-9)
	require.Zero(t, totals.TaxTotal)
	require.InDelta(t, 200, totals.Total, 1e-9)
}

func TestComputeTotalsRoundOff(t *testing.T) {
	items := []Item{{Quantity: 1, UnitCost: 100.49, VAT: 0}}

	rounded := ComputeTotals(items, 0, false, true)
	require.InDelta(t, 100, rounded.Total, 1e-9)

	exact := ComputeTotals(items, 0, false, false)
	require.InDelta(t, 100.49, exact.Total, 1e-9)
}

func TestComputeTotalsNoFloatDrift(t *testing.T) {
	// 0.1 * 3 accumulates cleanly through the decimal pipeline.
	items := []Item{
		{Quantity: 1, UnitCost: 0.1},
		{Quantity: 1, UnitCost: 0.1},
		{Quantity: 1, UnitCost: 0.1},
	}

	totals := ComputeTotals(items, 0, false, false)
	require.Equal(t, 0.3, totals.Subtotal)
	require.Equal(t, 0.3, totals.Total)
}
