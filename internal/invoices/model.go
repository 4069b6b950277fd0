package invoices

import (
	"time"

	"github.com/elamirizidani/Accounting-backend/internal/quotations"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusUnpaid    InvoiceStatus = "unpaid"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// ValidStatus reports whether s is a known invoice status.
func ValidStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusUnpaid, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Invoice is always born from an approved quotation; it is never created
// standalone.
type Invoice struct {
	ID            int64         `json:"id"`
	InvoiceNumber string        `json:"invoiceNumber"`
	QuotationID   int64         `json:"quotation"`
	InvoiceDate   time.Time     `json:"invoiceDate"`
	DueDate       time.Time     `json:"dueDate"`
	Status        InvoiceStatus `json:"status"`
	PaymentTerms  *string       `json:"paymentTerms,omitempty"`
	PaymentMethod *string       `json:"paymentMethod,omitempty"`
	// TotalAmount is the display copy captured at conversion time. Legacy
	// rows may carry currency symbols; always read it through money.Parse.
	TotalAmount string    `json:"totalAmount"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// InvoiceWithQuotation joins the source quotation and its billing parties
// for presentation.
type InvoiceWithQuotation struct {
	Invoice
	QuotationNumber string  `json:"quotationNumber"`
	Currency        string  `json:"currency"`
	CompanyName     string  `json:"companyName"`
	CustomerID      int64   `json:"customerId"`
	CustomerName    string  `json:"customerName"`
	CustomerCode    string  `json:"customerCode"`
	CustomerEmail   *string `json:"customerEmail,omitempty"`

	// Items are the source quotation's lines with service details,
	// loaded for single-invoice views only.
	Items []quotations.Item `json:"items,omitempty"`
}
