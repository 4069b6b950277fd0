package services

import "context"

// Catalog exposes the immutable service reference data.
type Catalog struct {
	repo Repository
}

func NewCatalog(repo Repository) *Catalog {
	return &Catalog{repo: repo}
}

func (c *Catalog) CreateService(ctx context.Context, req CreateServiceRequest) (*Service, error) {
	id, err := c.repo.CreateService(ctx, Service{Name: req.Name, Description: req.Description})
	if err != nil {
		return nil, err
	}
	return c.repo.GetService(ctx, id)
}

func (c *Catalog) ListServices(ctx context.Context) ([]Service, error) {
	return c.repo.ListServices(ctx)
}

func (c *Catalog) GetService(ctx context.Context, id int64) (*Service, error) {
	return c.repo.GetService(ctx, id)
}

func (c *Catalog) CreateServiceCode(ctx context.Context, req CreateServiceCodeRequest) (*ServiceCode, error) {
	id, err := c.repo.CreateServiceCode(ctx, ServiceCode{Code: req.Code, SubBrand: req.SubBrand})
	if err != nil {
		return nil, err
	}
	return c.repo.GetServiceCode(ctx, id)
}

func (c *Catalog) ListServiceCodes(ctx context.Context) ([]ServiceCode, error) {
	return c.repo.ListServiceCodes(ctx)
}
