package quotations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/elamirizidani/Accounting-backend/internal/platform/db"
)

var ErrNotFound = errors.New("quotation not found")

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Quotation, error)
	List(ctx context.Context, req ListQuotationsRequest) ([]QuotationWithDetails, int, error)
	Create(ctx context.Context, q Quotation) (int64, error)
	InsertItem(ctx context.Context, quotationID int64, item Item) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	DeleteItems(ctx context.Context, quotationID int64) error
	UpdateStatus(ctx context.Context, id int64, status QuotationStatus) error
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

const quotationColumns = `id, quotation_id, reference_number, status, currency, quotation_date,
	due_date, enable_tax, billed_by, billed_to, additional_notes, terms_conditions,
	bank_details, discount, round_off_total, signature_name, signature_image,
	total_amount, converted_to_invoice, invoice_id, created_at, updated_at`

func scanQuotation(row pgx.Row) (*Quotation, error) {
	var q Quotation
	err := row.Scan(
		&q.ID, &q.QuotationID, &q.ReferenceNumber, &q.Status, &q.Currency, &q.QuotationDate,
		&q.DueDate, &q.EnableTax, &q.BilledBy, &q.BilledTo, &q.AdditionalNotes, &q.TermsConditions,
		&q.BankDetails, &q.Discount, &q.RoundOffTotal, &q.SignatureName, &q.SignatureImage,
		&q.TotalAmount, &q.ConvertedToInvoice, &q.InvoiceID, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Quotation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE id = $1`, id)
	q, err := scanQuotation(row)
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	q.Items = items
	return q, nil
}

func (r *repository) listItems(ctx context.Context, quotationID int64) ([]Item, error) {
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

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.ServiceID, &it.CodeID, &it.Description, &it.Quantity,
			&it.UnitCost, &it.VAT, &it.Total, &it.ServiceName, &it.ServiceCode); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) List(ctx context.Context, req ListQuotationsRequest) ([]QuotationWithDetails, int, error) {
	conditions := []string{"1=1"}
	var args []any
	argPos := 1

	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("q.status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}
	if req.BilledTo != nil {
		conditions = append(conditions, fmt.Sprintf("q.billed_to = $%d", argPos))
		args = append(args, *req.BilledTo)
		argPos++
	}
	if req.BilledBy != nil {
		conditions = append(conditions, fmt.Sprintf("q.billed_by = $%d", argPos))
		args = append(args, *req.BilledBy)
		argPos++
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM quotations q %s", whereClause)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 100
	}

	query := fmt.Sprintf(`
		SELECT q.id, q.quotation_id, q.reference_number, q.status, q.currency, q.quotation_date,
		       q.due_date, q.enable_tax, q.billed_by, q.billed_to, q.additional_notes, q.terms_conditions,
		       q.bank_details, q.discount, q.round_off_total, q.signature_name, q.signature_image,
		       q.total_amount, q.converted_to_invoice, q.invoice_id, q.created_at, q.updated_at,
		       co.name AS company_name,
		       cu.name AS customer_name,
		       cu.customer_code
		FROM quotations q
		JOIN companies co ON q.billed_by = co.id
		JOIN customers cu ON q.billed_to = cu.id
		%s
		ORDER BY q.created_at DESC, q.id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)

	args = append(args, limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []QuotationWithDetails
	for rows.Next() {
		var q QuotationWithDetails
		err := rows.Scan(
			&q.ID, &q.QuotationID, &q.ReferenceNumber, &q.Status, &q.Currency, &q.QuotationDate,
			&q.DueDate, &q.EnableTax, &q.BilledBy, &q.BilledTo, &q.AdditionalNotes, &q.TermsConditions,
			&q.BankDetails, &q.Discount, &q.RoundOffTotal, &q.SignatureName, &q.SignatureImage,
			&q.TotalAmount, &q.ConvertedToInvoice, &q.InvoiceID, &q.CreatedAt, &q.UpdatedAt,
			&q.CompanyName, &q.CustomerName, &q.CustomerCode,
		)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range out {
		items, err := r.listItems(ctx, out[i].ID)
		if err != nil {
			return nil, 0, err
		}
		out[i].Items = items
	}

	return out, total, nil
}

func (r *repository) Create(ctx context.Context, q Quotation) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO quotations (
			quotation_id, reference_number, status, currency, quotation_date, due_date,
			enable_tax, billed_by, billed_to, additional_notes, terms_conditions, bank_details,
			discount, round_off_total, signature_name, signature_image, total_amount,
			converted_to_invoice, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,FALSE,NOW(),NOW())
		RETURNING id
	`, q.QuotationID, q.ReferenceNumber, q.Status, q.Currency, q.QuotationDate, q.DueDate,
		q.EnableTax, q.BilledBy, q.BilledTo, q.AdditionalNotes, q.TermsConditions, q.BankDetails,
		q.Discount, q.RoundOffTotal, q.SignatureName, q.SignatureImage, q.TotalAmount,
	).Scan(&id)
	return id, err
}

func (r *repository) InsertItem(ctx context.Context, quotationID int64, item Item) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO quotation_items (quotation_id, service_id, code_id, description, quantity, unit_cost, vat, total)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`, quotationID, item.ServiceID, item.CodeID, item.Description, item.Quantity, item.UnitCost, item.VAT, item.Total).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	query := "UPDATE quotations SET updated_at = $1"
	args := []any{time.Now()}
	argPos := 2

	for _, col := range []string{
		"reference_number", "currency", "quotation_date", "due_date", "enable_tax",
		"additional_notes", "terms_conditions", "bank_details", "discount",
		"round_off_total", "signature_name", "signature_image", "total_amount",
	} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) DeleteItems(ctx context.Context, quotationID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM quotation_items WHERE quotation_id = $1`, quotationID)
	return err
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status QuotationStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE quotations SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM quotations WHERE id = $1`, id)
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
		VALUES ('Q', 1)
		ON CONFLICT (doc_type)
		DO UPDATE SET seq = document_sequences.seq + 1
		RETURNING seq
	`).Scan(&seq)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Q-%05d", seq), nil
}
