package invoices

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/elamirizidani/Accounting-backend/internal/money"
)

// Summary is the income dashboard aggregate over a set of invoices.
type Summary struct {
	TotalInvoices int                   `json:"totalInvoices"`
	TotalIncome   float64               `json:"totalIncome"`
	PaidIncome    float64               `json:"paidIncome"`
	PendingIncome float64               `json:"pendingIncome"`
	ByStatus      map[InvoiceStatus]int `json:"invoicesByStatus"`
}

// SummaryOptions tunes the aggregation. The zero value gives the stock
// behavior: an invoice counts as paid income iff its status is "paid",
// and pending income is the residual of everything else, cancelled and
// draft included.
type SummaryOptions struct {
	// Paid decides which invoices contribute to PaidIncome.
	Paid func(Invoice) bool
	// Logger receives a warning per unparsable amount. Nil disables logging.
	Logger *slog.Logger
}

func defaultPaid(inv Invoice) bool {
	return inv.Status == InvoiceStatusPaid
}

func parseAmount(logger *slog.Logger, inv Invoice) float64 {
	v, ok := money.ParseChecked(inv.TotalAmount)
	if !ok && logger != nil {
		logger.Warn("unparsable invoice amount, counted as 0",
			slog.String("invoiceNumber", inv.InvoiceNumber),
			slog.String("totalAmount", inv.TotalAmount))
	}
	return v
}

// Summarize aggregates totals, paid/pending income and a status histogram.
// Pending income is total minus paid, not the sum of a "pending" status.
func Summarize(invoices []Invoice, opts SummaryOptions) Summary {
	paid := opts.Paid
	if paid == nil {
		paid = defaultPaid
	}

	totalIncome := decimal.Zero
	paidIncome := decimal.Zero
	byStatus := make(map[InvoiceStatus]int)

	for _, inv := range invoices {
		amount := decimal.NewFromFloat(parseAmount(opts.Logger, inv))
		totalIncome = totalIncome.Add(amount)
		if paid(inv) {
			paidIncome = paidIncome.Add(amount)
		}
		byStatus[inv.Status]++
	}

	totalF, _ := totalIncome.Float64()
	paidF, _ := paidIncome.Float64()
	pendingF, _ := totalIncome.Sub(paidIncome).Float64()

	return Summary{
		TotalInvoices: len(invoices),
		TotalIncome:   money.Format(totalF),
		PaidIncome:    money.Format(paidF),
		PendingIncome: money.Format(pendingF),
		ByStatus:      byStatus,
	}
}

const monthKeyLayout = "2006-01"

// SummarizeMonthly buckets paid income by invoice month over a trailing
// window of monthsBack months ending at ref's month, inclusive. Every
// month in the window starts at 0; invoices outside it are ignored.
func SummarizeMonthly(invoices []Invoice, monthsBack int, ref time.Time, opts SummaryOptions) map[string]float64 {
	if monthsBack <= 0 {
		monthsBack = 12
	}
	paid := opts.Paid
	if paid == nil {
		paid = defaultPaid
	}

	buckets := make(map[string]decimal.Decimal, monthsBack)
	anchor := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < monthsBack; i++ {
		buckets[anchor.AddDate(0, -i, 0).Format(monthKeyLayout)] = decimal.Zero
	}

	for _, inv := range invoices {
		if !paid(inv) || inv.InvoiceDate.IsZero() {
			continue
		}
		key := inv.InvoiceDate.Format(monthKeyLayout)
		current, ok := buckets[key]
		if !ok {
			continue
		}
		buckets[key] = current.Add(decimal.NewFromFloat(parseAmount(opts.Logger, inv)))
	}

	out := make(map[string]float64, len(buckets))
	for key, total := range buckets {
		f, _ := total.Float64()
		out[key] = money.Format(f)
	}
	return out
}

// MonthComparison compares invoice volume between the current and previous
// calendar month, bucketed by creation time.
type MonthComparison struct {
	CurrentMonth  map[InvoiceStatus]int     `json:"currentMonth"`
	PreviousMonth map[InvoiceStatus]int     `json:"previousMonth"`
	PercentChange map[InvoiceStatus]float64 `json:"percentChange"`
}

// MonthOverMonth counts invoices per status for ref's calendar month and
// the one before it, with a percent change per status: 0 when both are
// empty, 100 when appearing from nothing, otherwise the ratio at 2dp.
func MonthOverMonth(invoices []Invoice, ref time.Time) MonthComparison {
	currentKey := ref.Format(monthKeyLayout)
	previousKey := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -1, 0).Format(monthKeyLayout)

	current := make(map[InvoiceStatus]int)
	previous := make(map[InvoiceStatus]int)
	for _, inv := range invoices {
		switch inv.CreatedAt.Format(monthKeyLayout) {
		case currentKey:
			current[inv.Status]++
		case previousKey:
			previous[inv.Status]++
		}
	}

	change := make(map[InvoiceStatus]float64)
	for status := range current {
		change[status] = percentChange(previous[status], current[status])
	}
	for status := range previous {
		if _, seen := change[status]; !seen {
			change[status] = percentChange(previous[status], current[status])
		}
	}

	return MonthComparison{
		CurrentMonth:  current,
		PreviousMonth: previous,
		PercentChange: change,
	}
}

func percentChange(previous, current int) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	raw := (float64(current) - float64(previous)) / float64(previous) * 100
	f, _ := decimal.NewFromFloat(raw).Round(2).Float64()
	return f
}

// MonthKeys returns the window keys newest first, for stable presentation
// of the monthly map.
func MonthKeys(monthsBack int, ref time.Time) []string {
	if monthsBack <= 0 {
		monthsBack = 12
	}
	anchor := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	keys := make([]string, 0, monthsBack)
	for i := 0; i < monthsBack; i++ {
		keys = append(keys, anchor.AddDate(0, -i, 0).Format(monthKeyLayout))
	}
	return keys
}
