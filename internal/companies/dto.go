package companies

type CreateCompanyRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	TaxNumber *string `json:"taxNumber,omitempty" validate:"omitempty,max=50"`
}

type UpdateCompanyRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	TaxNumber *string `json:"taxNumber,omitempty" validate:"omitempty,max=50"`
}
