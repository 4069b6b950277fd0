package quotations

import "time"

type ItemRequest struct {
	ServiceID   int64   `json:"service" validate:"required,gt=0"`
	CodeID      int64   `json:"code" validate:"required,gt=0"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Quantity    float64 `json:"quantity" validate:"gte=0"`
	UnitCost    float64 `json:"unitCost" validate:"gte=0"`
	VAT         float64 `json:"vat" validate:"gte=0,lte=100"`
}

type CreateQuotationRequest struct {
	ReferenceNumber *string       `json:"referenceNumber,omitempty" validate:"omitempty,max=100"`
	Currency        string        `json:"currency" validate:"omitempty,oneof=USD EUR RWF"`
	QuotationDate   *time.Time    `json:"quotationDate,omitempty"`
	DueDate         *time.Time    `json:"dueDate,omitempty"`
	EnableTax       *bool         `json:"enableTax,omitempty"`
	BilledBy        int64         `json:"billedBy" validate:"required,gt=0"`
	BilledTo        int64         `json:"billedTo" validate:"required,gt=0"`
	Items           []ItemRequest `json:"items" validate:"dive"`
	AdditionalNotes *string       `json:"additionalNotes,omitempty"`
	TermsConditions *string       `json:"termsConditions,omitempty"`
	BankDetails     *string       `json:"bankDetails,omitempty"`
	Discount        float64       `json:"discount" validate:"gte=0,lte=100"`
	RoundOffTotal   *bool         `json:"roundOffTotal,omitempty"`
	SignatureName   *string       `json:"signatureName,omitempty"`
	SignatureImage  *string       `json:"signatureImage,omitempty"`
}

type UpdateQuotationRequest struct {
	ReferenceNumber *string        `json:"referenceNumber,omitempty" validate:"omitempty,max=100"`
	Currency        *string        `json:"currency,omitempty" validate:"omitempty,oneof=USD EUR RWF"`
	QuotationDate   *time.Time     `json:"quotationDate,omitempty"`
	DueDate         *time.Time     `json:"dueDate,omitempty"`
	EnableTax       *bool          `json:"enableTax,omitempty"`
	Items           *[]ItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
	AdditionalNotes *string        `json:"additionalNotes,omitempty"`
	TermsConditions *string        `json:"termsConditions,omitempty"`
	BankDetails     *string        `json:"bankDetails,omitempty"`
	Discount        *float64       `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	RoundOffTotal   *bool          `json:"roundOffTotal,omitempty"`
	SignatureName   *string        `json:"signatureName,omitempty"`
	SignatureImage  *string        `json:"signatureImage,omitempty"`
}

type UpdateStatusRequest struct {
	Status QuotationStatus `json:"status" validate:"required"`
}

type ListQuotationsRequest struct {
	Status   *QuotationStatus
	BilledTo *int64
	BilledBy *int64
	Limit    int
	Offset   int
}
