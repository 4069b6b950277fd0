package services

import "time"

// Service is a billable offering referenced by quotation items.
type Service struct {
	ID          int64     `json:"id"`
	Name        string    `json:"service"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ServiceCode is a code/sub-brand pairing used to classify services.
type ServiceCode struct {
	ID        int64     `json:"id"`
	Code      *string   `json:"code,omitempty"`
	SubBrand  *string   `json:"subBrand,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
