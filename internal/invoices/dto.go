package invoices

import "time"

// ConvertRequest creates an invoice from an approved quotation.
type ConvertRequest struct {
	QuotationID   int64          `json:"quotation" validate:"required,gt=0"`
	InvoiceDate   *time.Time     `json:"invoiceDate,omitempty"`
	DueDate       *time.Time     `json:"dueDate,omitempty"`
	Status        *InvoiceStatus `json:"status,omitempty"`
	PaymentTerms  *string        `json:"paymentTerms,omitempty" validate:"omitempty,max=200"`
	PaymentMethod *string        `json:"paymentMethod,omitempty" validate:"omitempty,max=100"`
	TotalAmount   *string        `json:"totalAmount,omitempty" validate:"omitempty,max=50"`
	Notes         *string        `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type UpdateStatusRequest struct {
	Status InvoiceStatus `json:"status" validate:"required"`
}

type ListInvoicesRequest struct {
	Status     *InvoiceStatus
	CustomerID *int64
	StartDate  *time.Time
	EndDate    *time.Time
}

// ListResponse is the list payload with the status histogram the
// dashboard renders next to it.
type ListResponse struct {
	Invoices []InvoiceWithQuotation `json:"invoices"`
	Total    int                    `json:"total"`
	ByStatus map[InvoiceStatus]int  `json:"byStatus"`
}
