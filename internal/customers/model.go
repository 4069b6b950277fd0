package customers

import "time"

// Customer is the recipient entity quotations are billed to. CustomerCode
// is a generated sequential code (C0001, C0002, ...).
type Customer struct {
	ID           int64     `json:"id"`
	CustomerCode string    `json:"customerCode"`
	Name         string    `json:"name"`
	Address      *string   `json:"address,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Email        *string   `json:"email,omitempty"`
	TaxNumber    *string   `json:"taxNumber,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
