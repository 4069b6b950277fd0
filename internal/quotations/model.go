package quotations

import "time"

type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "draft"
	QuotationStatusPending  QuotationStatus = "pending"
	QuotationStatusApproved QuotationStatus = "approved"
	QuotationStatusRejected QuotationStatus = "rejected"
)

// ValidStatus reports whether s is a known quotation status.
func ValidStatus(s QuotationStatus) bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusPending, QuotationStatusApproved, QuotationStatusRejected:
		return true
	}
	return false
}

// ValidCurrency reports whether c is a supported document currency.
func ValidCurrency(c string) bool {
	switch c {
	case "USD", "EUR", "RWF":
		return true
	}
	return false
}

type Quotation struct {
	ID              int64           `json:"id"`
	QuotationID     string          `json:"quotationId"`
	ReferenceNumber *string         `json:"referenceNumber,omitempty"`
	Status          QuotationStatus `json:"status"`
	Currency        string          `json:"currency"`
	QuotationDate   time.Time       `json:"quotationDate"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	EnableTax       bool            `json:"enableTax"`
	BilledBy        int64           `json:"billedBy"`
	BilledTo        int64           `json:"billedTo"`
	Items           []Item          `json:"items"`
	AdditionalNotes *string         `json:"additionalNotes,omitempty"`
	TermsConditions *string         `json:"termsConditions,omitempty"`
	BankDetails     *string         `json:"bankDetails,omitempty"`
	Discount        float64         `json:"discount"`
	RoundOffTotal   bool            `json:"roundOffTotal"`
	SignatureName   *string         `json:"signatureName,omitempty"`
	SignatureImage  *string         `json:"signatureImage,omitempty"`
	// TotalAmount is the display copy of the computed total. Legacy rows may
	// carry currency symbols and separators; always read it through money.Parse.
	TotalAmount        string     `json:"totalAmount"`
	ConvertedToInvoice bool       `json:"convertedToInvoice"`
	InvoiceID          *int64     `json:"invoice,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// Item is one quotation line. Total is a cache of ItemTotal for the current
// quantity, cost, vat and the owning quotation's tax flag; it is recomputed
// before every persist.
type Item struct {
	ID          int64   `json:"id"`
	ServiceID   int64   `json:"service"`
	CodeID      int64   `json:"code"`
	Description *string `json:"description,omitempty"`
	Quantity    float64 `json:"quantity"`
	UnitCost    float64 `json:"unitCost"`
	VAT         float64 `json:"vat"`
	Total       float64 `json:"total"`

	// Populated by repository joins for presentation.
	ServiceName *string `json:"serviceName,omitempty"`
	ServiceCode *string `json:"serviceCode,omitempty"`
}

// QuotationWithDetails joins the billing parties for presentation.
type QuotationWithDetails struct {
	Quotation
	CompanyName  string `json:"companyName"`
	CustomerName string `json:"customerName"`
	CustomerCode string `json:"customerCode"`
}
