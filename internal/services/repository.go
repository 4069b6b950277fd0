package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("service not found")

type Repository interface {
	GetService(ctx context.Context, id int64) (*Service, error)
	ListServices(ctx context.Context) ([]Service, error)
	CreateService(ctx context.Context, s Service) (int64, error)
	GetServiceCode(ctx context.Context, id int64) (*ServiceCode, error)
	ListServiceCodes(ctx context.Context) ([]ServiceCode, error)
	CreateServiceCode(ctx context.Context, c ServiceCode) (int64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) GetService(ctx context.Context, id int64) (*Service, error) {
	var s Service
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, description, created_at FROM services WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) ListServices(ctx context.Context) ([]Service, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, created_at FROM services ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repository) CreateService(ctx context.Context, s Service) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO services (name, description, created_at) VALUES ($1, $2, NOW()) RETURNING id
	`, s.Name, s.Description).Scan(&id)
	return id, err
}

func (r *repository) GetServiceCode(ctx context.Context, id int64) (*ServiceCode, error) {
	var c ServiceCode
	err := r.pool.QueryRow(ctx, `
		SELECT id, code, sub_brand, created_at FROM service_codes WHERE id = $1
	`, id).Scan(&c.ID, &c.Code, &c.SubBrand, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListServiceCodes(ctx context.Context) ([]ServiceCode, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, code, sub_brand, created_at FROM service_codes ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ServiceCode
	for rows.Next() {
		var c ServiceCode
		if err := rows.Scan(&c.ID, &c.Code, &c.SubBrand, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) CreateServiceCode(ctx context.Context, c ServiceCode) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO service_codes (code, sub_brand, created_at) VALUES ($1, $2, NOW()) RETURNING id
	`, c.Code, c.SubBrand).Scan(&id)
	return id, err
}
