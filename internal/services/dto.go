package services

type CreateServiceRequest struct {
	Name        string  `json:"service" validate:"required,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

type CreateServiceCodeRequest struct {
	Code     *string `json:"code,omitempty" validate:"omitempty,max=50"`
	SubBrand *string `json:"subBrand,omitempty" validate:"omitempty,max=100"`
}
