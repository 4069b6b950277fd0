package quotations

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/elamirizidani/Accounting-backend/internal/companies"
	"github.com/elamirizidani/Accounting-backend/internal/customers"
)

var (
	ErrInvalidStatus   = errors.New("invalid quotation status")
	ErrInvalidCurrency = errors.New("invalid currency")
)

// Service handles quotation business logic.
type Service struct {
	repo         Repository
	companyRepo  companies.Repository
	customerRepo customers.Repository
}

func NewService(repo Repository, companyRepo companies.Repository, customerRepo customers.Repository) *Service {
	return &Service{
		repo:         repo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
	}
}

func (s *Service) Create(ctx context.Context, req CreateQuotationRequest) (*Quotation, error) {
	if _, err := s.companyRepo.Get(ctx, req.BilledBy); err != nil {
		return nil, fmt.Errorf("verify company: %w", err)
	}
	if _, err := s.customerRepo.Get(ctx, req.BilledTo); err != nil {
		return nil, fmt.Errorf("verify customer: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	if !ValidCurrency(currency) {
		return nil, ErrInvalidCurrency
	}

	enableTax := true
	if req.EnableTax != nil {
		enableTax = *req.EnableTax
	}
	roundOff := true
	if req.RoundOffTotal != nil {
		roundOff = *req.RoundOffTotal
	}
	quotationDate := time.Now()
	if req.QuotationDate != nil {
		quotationDate = *req.QuotationDate
	}

	items := itemsFromRequests(req.Items)
	RecomputeItems(items, enableTax)
	totals := ComputeTotals(items, req.Discount, enableTax, roundOff)

	number, err := s.repo.GenerateNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate quotation number: %w", err)
	}

	quotation := Quotation{
		QuotationID:     number,
		ReferenceNumber: req.ReferenceNumber,
		Status:          QuotationStatusDraft,
		Currency:        currency,
		QuotationDate:   quotationDate,
		DueDate:         req.DueDate,
		EnableTax:       enableTax,
		BilledBy:        req.BilledBy,
		BilledTo:        req.BilledTo,
		AdditionalNotes: req.AdditionalNotes,
		TermsConditions: req.TermsConditions,
		BankDetails:     req.BankDetails,
		Discount:        req.Discount,
		RoundOffTotal:   roundOff,
		SignatureName:   req.SignatureName,
		SignatureImage:  req.SignatureImage,
		TotalAmount:     formatAmount(totals.Total),
	}

	var quotationID int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		id, err := repo.Create(ctx, quotation)
		if err != nil {
			return fmt.Errorf("create quotation: %w", err)
		}
		quotationID = id

		for _, item := range items {
			if _, err := repo.InsertItem(ctx, quotationID, item); err != nil {
				return fmt.Errorf("insert quotation item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, quotationID)
}

func (s *Service) Get(ctx context.Context, id int64) (*Quotation, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListQuotationsRequest) ([]QuotationWithDetails, int, error) {
	if req.Status != nil && !ValidStatus(*req.Status) {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, req)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateQuotationRequest) (*Quotation, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	enableTax := existing.EnableTax
	if req.EnableTax != nil {
		enableTax = *req.EnableTax
	}
	roundOff := existing.RoundOffTotal
	if req.RoundOffTotal != nil {
		roundOff = *req.RoundOffTotal
	}
	discount := existing.Discount
	if req.Discount != nil {
		discount = *req.Discount
	}

	// Item totals are caches of the calculator output. Any change to the
	// items, tax flag or discount forces a recompute before persisting.
	items := existing.Items
	if req.Items != nil {
		items = itemsFromRequests(*req.Items)
	}
	RecomputeItems(items, enableTax)
	totals := ComputeTotals(items, discount, enableTax, roundOff)

	updates := make(map[string]any)
	if req.ReferenceNumber != nil {
		updates["reference_number"] = *req.ReferenceNumber
	}
	if req.Currency != nil {
		if !ValidCurrency(*req.Currency) {
			return nil, ErrInvalidCurrency
		}
		updates["currency"] = *req.Currency
	}
	if req.QuotationDate != nil {
		updates["quotation_date"] = *req.QuotationDate
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.EnableTax != nil {
		updates["enable_tax"] = *req.EnableTax
	}
	if req.AdditionalNotes != nil {
		updates["additional_notes"] = *req.AdditionalNotes
	}
	if req.TermsConditions != nil {
		updates["terms_conditions"] = *req.TermsConditions
	}
	if req.BankDetails != nil {
		updates["bank_details"] = *req.BankDetails
	}
	if req.Discount != nil {
		updates["discount"] = *req.Discount
	}
	if req.RoundOffTotal != nil {
		updates["round_off_total"] = *req.RoundOffTotal
	}
	if req.SignatureName != nil {
		updates["signature_name"] = *req.SignatureName
	}
	if req.SignatureImage != nil {
		updates["signature_image"] = *req.SignatureImage
	}
	updates["total_amount"] = formatAmount(totals.Total)

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.Update(ctx, id, updates); err != nil {
			return err
		}
		if err := repo.DeleteItems(ctx, id); err != nil {
			return err
		}
		for _, item := range items {
			if _, err := repo.InsertItem(ctx, id, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update quotation: %w", err)
	}

	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status QuotationStatus) (*Quotation, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update quotation status: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// TotalsFor recomputes the aggregate amounts for a stored quotation.
func (s *Service) TotalsFor(ctx context.Context, id int64) (*Totals, error) {
	quotation, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	totals := ComputeTotals(quotation.Items, quotation.Discount, quotation.EnableTax, quotation.RoundOffTotal)
	return &totals, nil
}

func itemsFromRequests(reqs []ItemRequest) []Item {
	items := make([]Item, 0, len(reqs))
	for _, req := range reqs {
		items = append(items, Item{
			ServiceID:   req.ServiceID,
			CodeID:      req.CodeID,
			Description: req.Description,
			Quantity:    req.Quantity,
			UnitCost:    req.UnitCost,
			VAT:         req.VAT,
		})
	}
	return items
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
