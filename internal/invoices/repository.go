package invoices

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elamirizidani/Accounting-backend/internal/platform/db"
	"github.com/elamirizidani/Accounting-backend/internal/quotations"
)

var ErrNotFound = errors.New("invoice not found")

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*InvoiceWithQuotation, error)
	List(ctx context.Context, req ListInvoicesRequest) ([]InvoiceWithQuotation, error)
	Create(ctx context.Context, inv Invoice) (int64, error)
	// MarkConverted flips the quotation's conversion flag iff it is still
	// unset. Returns false when another conversion won the race.
	MarkConverted(ctx context.Context, quotationID, invoiceID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status InvoiceStatus) error
	Delete(ctx context.Context, id int64) error
	GenerateNumber(ctx context.Context) (string, error)
}

type dbtx interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		repoTx := &repository{db: tx, pool: r.pool}
		return fn(ctx, repoTx)
	})
}

const invoiceSelect = `
	SELECT i.id, i.invoice_number, i.quotation_id, i.invoice_date, i.due_date, i.status,
	       i.payment_terms, i.payment_method, i.total_amount, i.notes, i.created_at, i.updated_at,
	       q.quotation_id, q.currency,
	       co.name AS company_name,
	       cu.id, cu.name AS customer_name, cu.customer_code, cu.email
	FROM invoices i
	JOIN quotations q ON i.quotation_id = q.id
	JOIN companies co ON q.billed_by = co.id
	JOIN customers cu ON q.billed_to = cu.id`

func scanInvoice(row pgx.Row) (*InvoiceWithQuotation, error) {
	var inv InvoiceWithQuotation
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.QuotationID, &inv.InvoiceDate, &inv.DueDate, &inv.Status,
		&inv.PaymentTerms, &inv.PaymentMethod, &inv.TotalAmount, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
		&inv.QuotationNumber, &inv.Currency,
		&inv.CompanyName,
		&inv.CustomerID, &inv.CustomerName, &inv.CustomerCode, &inv.CustomerEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*InvoiceWithQuotation, error) {
	inv, err := scanInvoice(r.db.QueryRow(ctx, invoiceSelect+` WHERE i.id = $1`, id))
	if err != nil {
		return nil, err
	}

	items, err := r.listQuotationItems(ctx, inv.QuotationID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

func (r *repository) listQuotationItems(ctx context.Context, quotationID int64) ([]quotations.Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.service_id, i.code_id, i.description, i.quantity, i.unit_cost, i.vat, i.total,
		       s.name, sc.code
		FROM quotation_items i
		JOIN services s ON i.service_id = s.id
		JOIN service_codes sc ON i.code_id = sc.id
		WHERE i.quotation_id = $1
		ORDER BY i.id
	`, quotationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []quotations.Item
	for rows.Next() {
		var it quotations.Item
		if err := rows.Scan(&it.ID, &it.ServiceID, &it.CodeID, &it.Description, &it.Quantity,
			&it.UnitCost, &it.VAT, &it.Total, &it.ServiceName, &it.ServiceCode); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) List(ctx context.Context, req ListInvoicesRequest) ([]InvoiceWithQuotation, error) {
	query := invoiceSelect + ` WHERE 1=1`
	var args []any
	argPos := 1

	if req.Status != nil {
		query += fmt.Sprintf(" AND i.status = $%d", argPos)
		args = append(args, *req.Status)
		argPos++
	}
	if req.CustomerID != nil {
		query += fmt.Sprintf(" AND q.billed_to = $%d", argPos)
		args = append(args, *req.CustomerID)
		argPos++
	}
	if req.StartDate != nil {
		query += fmt.Sprintf(" AND i.invoice_date >= $%d", argPos)
		args = append(args, *req.StartDate)
		argPos++
	}
	if req.EndDate != nil {
		query += fmt.Sprintf(" AND i.invoice_date <= $%d", argPos)
		args = append(args, *req.EndDate)
		argPos++
	}
	query += " ORDER BY i.created_at DESC, i.id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InvoiceWithQuotation
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, inv Invoice) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO invoices (
			invoice_number, quotation_id, invoice_date, due_date, status,
			payment_terms, payment_method, total_amount, notes, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW(),NOW())
		RETURNING id
	`, inv.InvoiceNumber, inv.QuotationID, inv.InvoiceDate, inv.DueDate, inv.Status,
		inv.PaymentTerms, inv.PaymentMethod, inv.TotalAmount, inv.Notes,
	).Scan(&id)
	return id, err
}

func (r *repository) MarkConverted(ctx context.Context, quotationID, invoiceID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE quotations
		SET converted_to_invoice = TRUE, invoice_id = $1, updated_at = NOW()
		WHERE id = $2 AND converted_to_invoice = FALSE
	`, invoiceID, quotationID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status InvoiceStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE invoices SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) GenerateNumber(ctx context.Context) (string, error) {
	var seq int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO document_sequences (doc_type, seq)
		VALUES ('INV', 1)
		ON CONFLICT (doc_type)
		DO UPDATE SET seq = document_sequences.seq + 1
		RETURNING seq
	`).Scan(&seq)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV-%04d", seq), nil
}
