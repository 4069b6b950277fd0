package invoices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/singleflight"

	"github.com/elamirizidani/Accounting-backend/internal/money"
	"github.com/elamirizidani/Accounting-backend/internal/quotations"
	"github.com/elamirizidani/Accounting-backend/jobs"
)

var (
	ErrNotApproved      = errors.New("quotation is not approved")
	ErrAlreadyConverted = errors.New("quotation already converted to an invoice")
	ErrInvalidStatus    = errors.New("invalid invoice status")
)

// DueDateOffset is the default payment window when a conversion request
// carries no explicit due date.
const DueDateOffset = 30 * 24 * time.Hour

// Notifier enqueues post-conversion notifications. Satisfied by
// *jobs.Client; nil disables notifications.
type Notifier interface {
	EnqueueInvoiceSend(ctx context.Context, payload jobs.InvoiceSendPayload) (*asynq.TaskInfo, error)
}

// Service handles invoice business logic. Summary endpoints read through
// the versioned cache; conversions bump it.
type Service struct {
	repo       Repository
	quotations quotations.Repository
	cache      *Cache
	notifier   Notifier
	logger     *slog.Logger
	group      singleflight.Group
}

func NewService(repo Repository, quotationRepo quotations.Repository, cache *Cache, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		quotations: quotationRepo,
		cache:      cache,
		notifier:   notifier,
		logger:     logger,
	}
}

// ConvertQuotation turns an approved quotation into its one invoice. The
// invoice insert and the quotation's conversion flag flip share a
// transaction; losing the flag race rolls the insert back, so a failed
// conversion leaves no visible invoice.
func (s *Service) ConvertQuotation(ctx context.Context, req ConvertRequest) (*InvoiceWithQuotation, error) {
	quotation, err := s.quotations.Get(ctx, req.QuotationID)
	if err != nil {
		return nil, err
	}
	if quotation.Status != quotations.QuotationStatusApproved {
		return nil, ErrNotApproved
	}
	if quotation.ConvertedToInvoice {
		return nil, ErrAlreadyConverted
	}

	invoiceDate := time.Now()
	if req.InvoiceDate != nil {
		invoiceDate = *req.InvoiceDate
	}
	dueDate := invoiceDate.Add(DueDateOffset)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}
	status := InvoiceStatusUnpaid
	if req.Status != nil {
		status = *req.Status
	}
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	totalAmount := quotation.TotalAmount
	if req.TotalAmount != nil {
		totalAmount = *req.TotalAmount
	}

	var invoiceID int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		number, err := repo.GenerateNumber(ctx)
		if err != nil {
			return fmt.Errorf("generate invoice number: %w", err)
		}

		id, err := repo.Create(ctx, Invoice{
			InvoiceNumber: number,
			QuotationID:   quotation.ID,
			InvoiceDate:   invoiceDate,
			DueDate:       dueDate,
			Status:        status,
			PaymentTerms:  req.PaymentTerms,
			PaymentMethod: req.PaymentMethod,
			TotalAmount:   totalAmount,
			Notes:         req.Notes,
		})
		if err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}
		invoiceID = id

		converted, err := repo.MarkConverted(ctx, quotation.ID, id)
		if err != nil {
			return fmt.Errorf("mark quotation converted: %w", err)
		}
		if !converted {
			return ErrAlreadyConverted
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := s.repo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("summary cache bump failed", slog.Any("error", err))
	}
	s.notify(ctx, view)

	return view, nil
}

// notify enqueues the issued-invoice notification. Failures are logged,
// never surfaced: the conversion has already committed.
func (s *Service) notify(ctx context.Context, view *InvoiceWithQuotation) {
	if s.notifier == nil {
		return
	}
	to := ""
	if view.CustomerEmail != nil {
		to = *view.CustomerEmail
	}
	_, err := s.notifier.EnqueueInvoiceSend(ctx, jobs.InvoiceSendPayload{
		To:            to,
		InvoiceNumber: view.InvoiceNumber,
		CustomerName:  view.CustomerName,
		CompanyName:   view.CompanyName,
		Amount:        money.Display(money.Parse(view.TotalAmount), view.Currency),
		DueDate:       view.DueDate,
	})
	if err != nil {
		s.logger.Warn("invoice notification enqueue failed",
			slog.String("invoiceNumber", view.InvoiceNumber),
			slog.Any("error", err))
	}
}

func (s *Service) Get(ctx context.Context, id int64) (*InvoiceWithQuotation, error) {
	return s.repo.Get(ctx, id)
}

// List returns the filtered invoices together with a status histogram.
func (s *Service) List(ctx context.Context, req ListInvoicesRequest) (*ListResponse, error) {
	if req.Status != nil && !ValidStatus(*req.Status) {
		return nil, ErrInvalidStatus
	}
	invoices, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}
	byStatus := make(map[InvoiceStatus]int)
	for _, inv := range invoices {
		byStatus[inv.Status]++
	}
	return &ListResponse{Invoices: invoices, Total: len(invoices), ByStatus: byStatus}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status InvoiceStatus) (*InvoiceWithQuotation, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("summary cache bump failed", slog.Any("error", err))
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("summary cache bump failed", slog.Any("error", err))
	}
	return nil
}

func (s *Service) summaryOptions() SummaryOptions {
	return SummaryOptions{Logger: s.logger}
}

func (s *Service) allInvoices(ctx context.Context) ([]Invoice, error) {
	views, err := s.repo.List(ctx, ListInvoicesRequest{})
	if err != nil {
		return nil, err
	}
	return plainInvoices(views), nil
}

func plainInvoices(views []InvoiceWithQuotation) []Invoice {
	out := make([]Invoice, 0, len(views))
	for _, v := range views {
		out = append(out, v.Invoice)
	}
	return out
}

// Summary returns the income dashboard aggregate. Concurrent cache misses
// collapse to a single rebuild.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	key, err := s.cache.BuildKey(ctx, "invoices", "summary")
	if err != nil {
		return Summary{}, err
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		var summary Summary
		err := s.cache.FetchJSON(ctx, key, &summary, func(ctx context.Context) (any, error) {
			invoices, err := s.allInvoices(ctx)
			if err != nil {
				return nil, err
			}
			return Summarize(invoices, s.summaryOptions()), nil
		})
		return summary, err
	})
	if err != nil {
		return Summary{}, err
	}
	return v.(Summary), nil
}

// MonthlySummary returns paid income bucketed by month over the trailing
// window ending at the current month.
func (s *Service) MonthlySummary(ctx context.Context, monthsBack int) (map[string]float64, error) {
	if monthsBack <= 0 {
		monthsBack = 12
	}
	key, err := s.cache.BuildKey(ctx, "invoices", "monthly", strconv.Itoa(monthsBack))
	if err != nil {
		return nil, err
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		var buckets map[string]float64
		err := s.cache.FetchJSON(ctx, key, &buckets, func(ctx context.Context) (any, error) {
			invoices, err := s.allInvoices(ctx)
			if err != nil {
				return nil, err
			}
			return SummarizeMonthly(invoices, monthsBack, time.Now(), s.summaryOptions()), nil
		})
		return buckets, err
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]float64), nil
}

// MonthOverMonthSummary compares this month's invoice volume to last month's.
func (s *Service) MonthOverMonthSummary(ctx context.Context) (MonthComparison, error) {
	key, err := s.cache.BuildKey(ctx, "invoices", "mom")
	if err != nil {
		return MonthComparison{}, err
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		var cmp MonthComparison
		err := s.cache.FetchJSON(ctx, key, &cmp, func(ctx context.Context) (any, error) {
			invoices, err := s.allInvoices(ctx)
			if err != nil {
				return nil, err
			}
			return MonthOverMonth(invoices, time.Now()), nil
		})
		return cmp, err
	})
	if err != nil {
		return MonthComparison{}, err
	}
	return v.(MonthComparison), nil
}
