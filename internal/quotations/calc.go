package quotations

import (
	"github.com/shopspring/decimal"

	"github.com/elamirizidani/Accounting-backend/internal/money"
)

// ItemTotal computes one line's total from quantity, unit cost and VAT
// percentage. No currency rounding happens here; rounding, if any, is
// applied only to the quotation grand total.
func ItemTotal(quantity, unitCost, vat float64, taxEnabled bool) float64 {
	subtotal := quantity * unitCost
	if taxEnabled {
		return subtotal + subtotal*(vat/100)
	}
	return subtotal
}

// RecomputeItems overwrites every item's cached total. Services call this
// before each persist so a stored total can never drift from its inputs.
func RecomputeItems(items []Item, taxEnabled bool) {
	for i := range items {
		items[i].Total = ItemTotal(items[i].Quantity, items[i].UnitCost, items[i].VAT, taxEnabled)
	}
}

// Totals holds the aggregate amounts of a quotation.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	TaxTotal       float64 `json:"taxTotal"`
	Discount       float64 `json:"discount"`
	DiscountAmount float64 `json:"discountAmount"`
	Total          float64 `json:"total"`
}

var hundred = decimal.NewFromInt(100)

// ComputeTotals aggregates item lines into subtotal, tax total, discount
// amount and grand total. Amounts accumulate in fixed-point decimal; the
// grand total is rounded to the nearest whole unit when roundOff is set.
// An empty item list yields all zeros.
func ComputeTotals(items []Item, discountPercent float64, taxEnabled, roundOff bool) Totals {
	subtotal := decimal.Zero
	taxTotal := decimal.Zero

	for _, item := range items {
		line := decimal.NewFromFloat(item.Quantity).Mul(decimal.NewFromFloat(item.UnitCost))
		subtotal = subtotal.Add(line)
		if taxEnabled {
			taxTotal = taxTotal.Add(line.Mul(decimal.NewFromFloat(item.VAT)).Div(hundred))
		}
	}

	discountAmount := subtotal.Mul(decimal.NewFromFloat(discountPercent)).Div(hundred)
	total := subtotal.Add(taxTotal).Sub(discountAmount)
	if roundOff {
		total = total.Round(0)
	}

	subtotalF, _ := subtotal.Float64()
	taxTotalF, _ := taxTotal.Float64()
	discountAmountF, _ := discountAmount.Float64()
	totalF, _ := total.Float64()

	return Totals{
		Subtotal:       money.Format(subtotalF),
		TaxTotal:       money.Format(taxTotalF),
		Discount:       discountPercent,
		DiscountAmount: money.Format(discountAmountF),
		Total:          money.Format(totalF),
	}
}
