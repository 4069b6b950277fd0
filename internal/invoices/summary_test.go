package invoices

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSummarizeScenario(t *testing.T) {
	invoices := []Invoice{
		{Status: InvoiceStatusPaid, TotalAmount: "$500"},
		{Status: InvoiceStatusUnpaid, TotalAmount: "$300"},
	}

	summary := Summarize(invoices, SummaryOptions{})

	require.Equal(t, 2, summary.TotalInvoices)
	require.InDelta(t, 800, summary.TotalIncome, 1e-9)
	require.InDelta(t, 500, summary.PaidIncome, 1e-9)
	require.InDelta(t, 300, summary.PendingIncome, 1e-9)
	require.Equal(t, map[InvoiceStatus]int{InvoiceStatusPaid: 1, InvoiceStatusUnpaid: 1}, summary.ByStatus)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, SummaryOptions{})

	require.Zero(t, summary.TotalInvoices)
	require.Zero(t, summary.TotalIncome)
	require.Zero(t, summary.PaidIncome)
	require.Zero(t, summary.PendingIncome)
	require.Empty(t, summary.ByStatus)
}

func TestSummarizePendingIsResidual(t *testing.T) {
	// Pending income folds in every non-paid status, cancelled included.
	invoices := []Invoice{
		{Status: InvoiceStatusPaid, TotalAmount: "100"},
		{Status: InvoiceStatusOverdue, TotalAmount: "50"},
		{Status: InvoiceStatusCancelled, TotalAmount: "25"},
		{Status: InvoiceStatusDraft, TotalAmount: "10"},
	}

	summary := Summarize(invoices, SummaryOptions{})

	require.InDelta(t, 185, summary.TotalIncome, 1e-9)
	require.InDelta(t, 100, summary.PaidIncome, 1e-9)
	require.InDelta(t, 85, summary.PendingIncome, 1e-9)
}

func TestSummarizeCustomPaidPredicate(t *testing.T) {
	invoices := []Invoice{
		{Status: InvoiceStatusPaid, TotalAmount: "100"},
		{Status: InvoiceStatusOverdue, TotalAmount: "50"},
		{Status: InvoiceStatusCancelled, TotalAmount: "25"},
	}

	// Treat overdue as collectable income too.
	summary := Summarize(invoices, SummaryOptions{
		Paid: func(inv Invoice) bool {
			return inv.Status == InvoiceStatusPaid || inv.Status == InvoiceStatusOverdue
		},
	})

	require.InDelta(t, 150, summary.PaidIncome, 1e-9)
	require.InDelta(t, 25, summary.PendingIncome, 1e-9)
}

func TestSummarizeDirtyAmounts(t *testing.T) {
	invoices := []Invoice{
		{Status: InvoiceStatusPaid, TotalAmount: "1,234.50 USD"},
		{Status: InvoiceStatusPaid, TotalAmount: "garbage"},
		{Status: InvoiceStatusUnpaid, TotalAmount: ""},
	}

	summary := Summarize(invoices, SummaryOptions{})

	require.Equal(t, 3, summary.TotalInvoices)
	require.InDelta(t, 1234.50, summary.TotalIncome, 1e-9)
	require.InDelta(t, 1234.50, summary.PaidIncome, 1e-9)
	require.Zero(t, summary.PendingIncome)
}

func TestSummarizeNoFloatDrift(t *testing.T) {
	invoices := make([]Invoice, 10)
	for i := range invoices {
		invoices[i] = Invoice{Status: InvoiceStatusPaid, TotalAmount: "0.10"}
	}

	summary := Summarize(invoices, SummaryOptions{})
	require.Equal(t, 1.0, summary.PaidIncome)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestSummarizeMonthlyWindow(t *testing.T) {
	ref := date(2024, time.March, 15)

	buckets := SummarizeMonthly(nil, 12, ref, SummaryOptions{})

	require.Len(t, buckets, 12)
	require.Contains(t, buckets, "2023-04")
	require.Contains(t, buckets, "2024-03")
	require.NotContains(t, buckets, "2023-03")
	for key, v := range buckets {
		require.Zero(t, v, "bucket %s", key)
	}
}

func TestSummarizeMonthlyBuckets(t *testing.T) {
	ref := date(2024, time.March, 15)
	invoices := []Invoice{
		{Status: InvoiceStatusPaid, TotalAmount: "100", InvoiceDate: date(2024, time.March, 1)},
		{Status: InvoiceStatusPaid, TotalAmount: "50", InvoiceDate: date(2024, time.March, 28)},
		{Status: InvoiceStatusPaid, TotalAmount: "75", InvoiceDate: date(2023, time.June, 10)},
		// Unpaid never contributes.
		{Status: InvoiceStatusUnpaid, TotalAmount: "999", InvoiceDate: date(2024, time.March, 2)},
		// Outside the window, silently ignored.
		{Status: InvoiceStatusPaid, TotalAmount: "888", InvoiceDate: date(2022, time.January, 1)},
		// No invoice date, skipped.
		{Status: InvoiceStatusPaid, TotalAmount: "777"},
	}

	buckets := SummarizeMonthly(invoices, 12, ref, SummaryOptions{})

	require.InDelta(t, 150, buckets["2024-03"], 1e-9)
	require.InDelta(t, 75, buckets["2023-06"], 1e-9)
	require.Zero(t, buckets["2023-12"])
}

func TestMonthKeysNewestFirst(t *testing.T) {
	keys := MonthKeys(3, date(2024, time.March, 15))
	require.Equal(t, []string{"2024-03", "2024-02", "2024-01"}, keys)
}

func TestMonthOverMonth(t *testing.T) {
	ref := date(2024, time.March, 15)
	invoices := []Invoice{
		{Status: InvoiceStatusPaid, CreatedAt: date(2024, time.March, 1)},
		{Status: InvoiceStatusPaid, CreatedAt: date(2024, time.March, 2)},
		{Status: InvoiceStatusUnpaid, CreatedAt: date(2024, time.March, 3)},
		{Status: InvoiceStatusPaid, CreatedAt: date(2024, time.February, 20)},
		{Status: InvoiceStatusOverdue, CreatedAt: date(2024, time.February, 21)},
		// January is out of scope either way.
		{Status: InvoiceStatusPaid, CreatedAt: date(2024, time.January, 5)},
	}

	cmp := MonthOverMonth(invoices, ref)

	require.Equal(t, map[InvoiceStatus]int{InvoiceStatusPaid: 2, InvoiceStatusUnpaid: 1}, cmp.CurrentMonth)
	require.Equal(t, map[InvoiceStatus]int{InvoiceStatusPaid: 1, InvoiceStatusOverdue: 1}, cmp.PreviousMonth)

	// paid: 1 -> 2 is +100%; unpaid appears from nothing; overdue vanishes.
	require.InDelta(t, 100, cmp.PercentChange[InvoiceStatusPaid], 1e-9)
	require.InDelta(t, 100, cmp.PercentChange[InvoiceStatusUnpaid], 1e-9)
	require.InDelta(t, -100, cmp.PercentChange[InvoiceStatusOverdue], 1e-9)
}

func TestMonthOverMonthEmpty(t *testing.T) {
	cmp := MonthOverMonth(nil, date(2024, time.March, 15))

	require.Empty(t, cmp.CurrentMonth)
	require.Empty(t, cmp.PreviousMonth)
	require.Empty(t, cmp.PercentChange)
}

func TestPercentChangeRounding(t *testing.T) {
	require.InDelta(t, 33.33, percentChange(3, 4), 1e-9)
	require.InDelta(t, -50, percentChange(2, 1), 1e-9)
	require.Zero(t, percentChange(0, 0))
	require.InDelta(t, 100, percentChange(0, 5), 1e-9)
}
