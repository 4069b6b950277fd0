package invoices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/elamirizidani/Accounting-backend/internal/customers"
	"github.com/elamirizidani/Accounting-backend/internal/platform/httpx"
)

// CustomerWithDetails is a customer joined with their invoices and the
// income aggregate over them.
type CustomerWithDetails struct {
	customers.Customer
	Invoices []InvoiceWithQuotation `json:"invoices"`
	Summary  Summary                `json:"summary"`
}

// CustomerReport is the single-customer financial view with the trailing
// 12-month paid income.
type CustomerReport struct {
	customers.Customer
	Summary       Summary            `json:"summary"`
	MonthlyIncome map[string]float64 `json:"monthlyIncome"`
}

// Reports derives per-customer financial views from the invoice set.
type Reports struct {
	repo      Repository
	customers customers.Repository
	logger    *slog.Logger
}

func NewReports(repo Repository, customerRepo customers.Repository, logger *slog.Logger) *Reports {
	return &Reports{repo: repo, customers: customerRepo, logger: logger}
}

func (r *Reports) options() SummaryOptions {
	return SummaryOptions{Logger: r.logger}
}

func (r *Reports) customerInvoices(ctx context.Context, customerID int64, req ListInvoicesRequest) ([]InvoiceWithQuotation, error) {
	req.CustomerID = &customerID
	return r.repo.List(ctx, req)
}

// WithDetails returns every customer with their invoices and summary.
func (r *Reports) WithDetails(ctx context.Context) ([]CustomerWithDetails, error) {
	all, err := r.customers.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CustomerWithDetails, 0, len(all))
	for _, c := range all {
		invoices, err := r.customerInvoices(ctx, c.ID, ListInvoicesRequest{})
		if err != nil {
			return nil, fmt.Errorf("list invoices for customer %s: %w", c.CustomerCode, err)
		}
		out = append(out, CustomerWithDetails{
			Customer: c,
			Invoices: invoices,
			Summary:  Summarize(plainInvoices(invoices), r.options()),
		})
	}
	return out, nil
}

// CustomerSummaryRow is one line of the per-customer income table.
type CustomerSummaryRow struct {
	ID           int64   `json:"id"`
	CustomerCode string  `json:"customerCode"`
	Name         string  `json:"name"`
	Summary      Summary `json:"summary"`
}

// SummaryByCustomer returns the income aggregate per customer.
func (r *Reports) SummaryByCustomer(ctx context.Context) ([]CustomerSummaryRow, error) {
	detailed, err := r.WithDetails(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]CustomerSummaryRow, 0, len(detailed))
	for _, d := range detailed {
		rows = append(rows, CustomerSummaryRow{
			ID:           d.ID,
			CustomerCode: d.CustomerCode,
			Name:         d.Name,
			Summary:      d.Summary,
		})
	}
	return rows, nil
}

// Report builds the single-customer view with 12 months of paid income.
func (r *Reports) Report(ctx context.Context, customerID int64) (*CustomerReport, error) {
	customer, err := r.customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	views, err := r.customerInvoices(ctx, customerID, ListInvoicesRequest{})
	if err != nil {
		return nil, err
	}
	invoices := plainInvoices(views)
	return &CustomerReport{
		Customer:      *customer,
		Summary:       Summarize(invoices, r.options()),
		MonthlyIncome: SummarizeMonthly(invoices, 12, time.Now(), r.options()),
	}, nil
}

// Invoices lists a customer's invoices with optional status and date filters.
func (r *Reports) Invoices(ctx context.Context, customerID int64, req ListInvoicesRequest) ([]InvoiceWithQuotation, error) {
	if req.Status != nil && !ValidStatus(*req.Status) {
		return nil, ErrInvalidStatus
	}
	if _, err := r.customers.Get(ctx, customerID); err != nil {
		return nil, err
	}
	return r.customerInvoices(ctx, customerID, req)
}

// ReportsHandler exposes the customer financial reports. It mounts onto
// the customers route tree next to the plain CRUD.
type ReportsHandler struct {
	logger  *slog.Logger
	reports *Reports
}

func NewReportsHandler(logger *slog.Logger, reports *Reports) *ReportsHandler {
	return &ReportsHandler{logger: logger, reports: reports}
}

func (h *ReportsHandler) MountRoutes(r chi.Router) {
	r.Get("/withDetails", h.WithDetails)
	r.Get("/summary", h.Summary)
	r.Get("/{id}/report", h.Report)
	r.Get("/{id}/invoices", h.Invoices)
}

func (h *ReportsHandler) WithDetails(w http.ResponseWriter, r *http.Request) {
	out, err := h.reports.WithDetails(r.Context())
	if err != nil {
		h.logger.Error("customers with details failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *ReportsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.reports.SummaryByCustomer(r.Context())
	if err != nil {
		h.logger.Error("customer summary failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *ReportsHandler) Report(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	report, err := h.reports.Report(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *ReportsHandler) Invoices(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req ListInvoicesRequest
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := InvoiceStatus(raw)
		req.Status = &status
	}
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid startDate, expected YYYY-MM-DD")
			return
		}
		req.StartDate = &parsed
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid endDate, expected YYYY-MM-DD")
			return
		}
		req.EndDate = &parsed
	}

	invoices, err := h.reports.Invoices(r.Context(), id, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, invoices)
}

func (h *ReportsHandler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid customer ID")
		return 0, false
	}
	return id, true
}

func (h *ReportsHandler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, customers.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "Customer not found")
	case errors.Is(err, ErrInvalidStatus):
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid invoice status")
	default:
		httpx.RespondError(w, err)
	}
}
