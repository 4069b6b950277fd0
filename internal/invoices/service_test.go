package invoices

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/elamirizidani/Accounting-backend/internal/quotations"
)

// fakeStore backs both repositories so the conversion guard can be
// exercised across the package boundary.
type fakeStore struct {
	mu         sync.Mutex
	quotations map[int64]quotations.Quotation
	invoices   map[int64]Invoice
	nextID     int64
	nextSeq    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		quotations: make(map[int64]quotations.Quotation),
		invoices:   make(map[int64]Invoice),
		nextID:     1,
		nextSeq:    1,
	}
}

func (s *fakeStore) addQuotation(q quotations.Quotation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotations[q.ID] = q
}

func (s *fakeStore) invoiceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.invoices)
}

type quotationRepoStub struct {
	store *fakeStore
}

func (r *quotationRepoStub) WithTx(ctx context.Context, fn func(context.Context, quotations.Repository) error) error {
	return fn(ctx, r)
}

func (r *quotationRepoStub) Get(_ context.Context, id int64) (*quotations.Quotation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q, ok := r.store.quotations[id]
	if !ok {
		return nil, quotations.ErrNotFound
	}
	return &q, nil
}

func (r *quotationRepoStub) List(context.Context, quotations.ListQuotationsRequest) ([]quotations.QuotationWithDetails, int, error) {
	return nil, 0, nil
}
func (r *quotationRepoStub) Create(context.Context, quotations.Quotation) (int64, error) {
	return 0, nil
}
func (r *quotationRepoStub) InsertItem(context.Context, int64, quotations.Item) (int64, error) {
	return 0, nil
}
func (r *quotationRepoStub) Update(context.Context, int64, map[string]any) error { return nil }
func (r *quotationRepoStub) DeleteItems(context.Context, int64) error            { return nil }
func (r *quotationRepoStub) UpdateStatus(context.Context, int64, quotations.QuotationStatus) error {
	return nil
}
func (r *quotationRepoStub) Delete(context.Context, int64) error { return nil }
func (r *quotationRepoStub) GenerateNumber(context.Context) (string, error) {
	return "Q-00001", nil
}

// memoryInvoiceRepo serializes each transaction under the store mutex and
// restores a snapshot when the transaction function fails.
type memoryInvoiceRepo struct {
	store *fakeStore
	inTx  bool
}

func (m *memoryInvoiceRepo) lock() func() {
	if m.inTx {
		return func() {}
	}
	m.store.mu.Lock()
	return m.store.mu.Unlock
}

func (m *memoryInvoiceRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	invoiceSnap := make(map[int64]Invoice, len(m.store.invoices))
	for k, v := range m.store.invoices {
		invoiceSnap[k] = v
	}
	quotationSnap := make(map[int64]quotations.Quotation, len(m.store.quotations))
	for k, v := range m.store.quotations {
		quotationSnap[k] = v
	}

	if err := fn(ctx, &memoryInvoiceRepo{store: m.store, inTx: true}); err != nil {
		m.store.invoices = invoiceSnap
		m.store.quotations = quotationSnap
		return err
	}
	return nil
}

func (m *memoryInvoiceRepo) view(inv Invoice) InvoiceWithQuotation {
	out := InvoiceWithQuotation{Invoice: inv, Currency: "USD"}
	if q, ok := m.store.quotations[inv.QuotationID]; ok {
		out.QuotationNumber = q.QuotationID
		out.Currency = q.Currency
		out.CustomerID = q.BilledTo
	}
	return out
}

func (m *memoryInvoiceRepo) Get(_ context.Context, id int64) (*InvoiceWithQuotation, error) {
	defer m.lock()()
	inv, ok := m.store.invoices[id]
	if !ok {
		return nil, ErrNotFound
	}
	v := m.view(inv)
	return &v, nil
}

func (m *memoryInvoiceRepo) List(_ context.Context, req ListInvoicesRequest) ([]InvoiceWithQuotation, error) {
	defer m.lock()()
	var out []InvoiceWithQuotation
	for _, inv := range m.store.invoices {
		v := m.view(inv)
		if req.Status != nil && inv.Status != *req.Status {
			continue
		}
		if req.CustomerID != nil && v.CustomerID != *req.CustomerID {
			continue
		}
		if req.StartDate != nil && inv.InvoiceDate.Before(*req.StartDate) {
			continue
		}
		if req.EndDate != nil && inv.InvoiceDate.After(*req.EndDate) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *memoryInvoiceRepo) Create(_ context.Context, inv Invoice) (int64, error) {
	defer m.lock()()
	inv.ID = m.store.nextID
	inv.CreatedAt = time.Now()
	m.store.invoices[inv.ID] = inv
	m.store.nextID++
	return inv.ID, nil
}

func (m *memoryInvoiceRepo) MarkConverted(_ context.Context, quotationID, invoiceID int64) (bool, error) {
	defer m.lock()()
	q, ok := m.store.quotations[quotationID]
	if !ok || q.ConvertedToInvoice {
		return false, nil
	}
	q.ConvertedToInvoice = true
	q.InvoiceID = &invoiceID
	m.store.quotations[quotationID] = q
	return true, nil
}

func (m *memoryInvoiceRepo) UpdateStatus(_ context.Context, id int64, status InvoiceStatus) error {
	defer m.lock()()
	inv, ok := m.store.invoices[id]
	if !ok {
		return ErrNotFound
	}
	inv.Status = status
	m.store.invoices[id] = inv
	return nil
}

func (m *memoryInvoiceRepo) Delete(_ context.Context, id int64) error {
	defer m.lock()()
	if _, ok := m.store.invoices[id]; !ok {
		return ErrNotFound
	}
	delete(m.store.invoices, id)
	return nil
}

func (m *memoryInvoiceRepo) GenerateNumber(_ context.Context) (string, error) {
	defer m.lock()()
	n := fmt.Sprintf("INV-%04d", m.store.nextSeq)
	m.store.nextSeq++
	return n, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func approvedQuotation(id int64) quotations.Quotation {
	return quotations.Quotation{
		ID:          id,
		QuotationID: fmt.Sprintf("Q-%05d", id),
		Status:      quotations.QuotationStatusApproved,
		Currency:    "USD",
		BilledTo:    7,
		TotalAmount: "220.00",
	}
}

func newConversionService(store *fakeStore) *Service {
	return NewService(
		&memoryInvoiceRepo{store: store},
		&quotationRepoStub{store: store},
		nil, // cache passthrough
		nil, // notifications off
		testLogger(),
	)
}

func TestConvertQuotation(t *testing.T) {
	store := newFakeStore()
	store.addQuotation(approvedQuotation(1))
	svc := newConversionService(store)

	inv, err := svc.ConvertQuotation(context.Background(), ConvertRequest{QuotationID: 1})
	require.NoError(t, err)

	require.Equal(t, "INV-0001", inv.InvoiceNumber)
	require.Equal(t, InvoiceStatusUnpaid, inv.Status)
	require.Equal(t, "220.00", inv.TotalAmount)
	require.Equal(t, int64(1), inv.QuotationID)
	require.WithinDuration(t, inv.InvoiceDate.Add(DueDateOffset), inv.DueDate, time.Second)

	q, err := (&quotationRepoStub{store: store}).Get(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, q.ConvertedToInvoice)
	require.NotNil(t, q.InvoiceID)
	require.Equal(t, inv.ID, *q.InvoiceID)
}

func TestConvertQuotationOverrides(t *testing.T) {
	store := newFakeStore()
	store.addQuotation(approvedQuotation(1))
	svc := newConversionService(store)

	invoiceDate := date(2024, time.March, 1)
	dueDate := date(2024, time.March, 10)
	amount := "199.99"
	terms := "net 10"
	inv, err := svc.ConvertQuotation(context.Background(), ConvertRequest{
		QuotationID:  1,
		InvoiceDate:  &invoiceDate,
		DueDate:      &dueDate,
		TotalAmount:  &amount,
		PaymentTerms: &terms,
	})
	require.NoError(t, err)

	require.True(t, inv.InvoiceDate.Equal(invoiceDate))
	require.True(t, inv.DueDate.Equal(dueDate))
	require.Equal(t, "199.99", inv.TotalAmount)
	require.Equal(t, "net 10", *inv.PaymentTerms)
}

func TestConvertQuotationNotApproved(t *testing.T) {
	store := newFakeStore()
	q := approvedQuotation(1)
	q.Status = quotations.QuotationStatusPending
	store.addQuotation(q)
	svc := newConversionService(store)

	_, err := svc.ConvertQuotation(context.Background(), ConvertRequest{QuotationID: 1})
	require.ErrorIs(t, err, ErrNotApproved)
	require.Zero(t, store.invoiceCount())
}

func TestConvertQuotationMissing(t *testing.T) {
	svc := newConversionService(newFakeStore())

	_, err := svc.ConvertQuotation(context.Background(), ConvertRequest{QuotationID: 42})
	require.ErrorIs(t, err, quotations.ErrNotFound)
}

func TestConvertQuotationTwiceRejected(t *testing.T) {
	store := newFakeStore()
	store.addQuotation(approvedQuotation(1))
	svc := newConversionService(store)

	_, err := svc.ConvertQuotation(context.Background(), ConvertRequest{QuotationID: 1})
	require.NoError(t, err)

	_, err = svc.ConvertQuotation(context.Background(), ConvertRequest{QuotationID: 1})
	require.ErrorIs(t, err, ErrAlreadyConverted)
	require.Equal(t, 1, store.invoiceCount())
}

func TestConvertQuotationConcurrent(t *testing.T) {
	store := newFakeStore()
	store.addQuotation(approvedQuotation(1))
	svc := newConversionService(store)

	const racers = 8
	errs := make(chan error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ConvertQuotation(context.Background(), ConvertRequest{QuotationID: 1})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, ErrAlreadyConverted)
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, 1, store.invoiceCount())
}

func TestListWithStatusHistogram(t *testing.T) {
	store := newFakeStore()
	store.addQuotation(approvedQuotation(1))
	repo := &memoryInvoiceRepo{store: store}
	for i, status := range []InvoiceStatus{InvoiceStatusPaid, InvoiceStatusPaid, InvoiceStatusUnpaid} {
		_, err := repo.Create(context.Background(), Invoice{
			InvoiceNumber: fmt.Sprintf("INV-%04d", i+1),
			QuotationID:   1,
			Status:        status,
			TotalAmount:   "100",
		})
		require.NoError(t, err)
	}
	svc := NewService(repo, &quotationRepoStub{store: store}, nil, nil, testLogger())

	resp, err := svc.List(context.Background(), ListInvoicesRequest{})
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)
	require.Equal(t, map[InvoiceStatus]int{InvoiceStatusPaid: 2, InvoiceStatusUnpaid: 1}, resp.ByStatus)

	bad := InvoiceStatus("shredded")
	_, err = svc.List(context.Background(), ListInvoicesRequest{Status: &bad})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	store := newFakeStore()
	svc := newConversionService(store)

	_, err := svc.UpdateStatus(context.Background(), 1, InvoiceStatus("settled"))
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSummaryThroughService(t *testing.T) {
	store := newFakeStore()
	store.addQuotation(approvedQuotation(1))
	repo := &memoryInvoiceRepo{store: store}
	_, err := repo.Create(context.Background(), Invoice{QuotationID: 1, Status: InvoiceStatusPaid, TotalAmount: "$500"})
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), Invoice{QuotationID: 1, Status: InvoiceStatusUnpaid, TotalAmount: "$300"})
	require.NoError(t, err)
	svc := NewService(repo, &quotationRepoStub{store: store}, nil, nil, testLogger())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 800, summary.TotalIncome, 1e-9)
	require.InDelta(t, 500, summary.PaidIncome, 1e-9)
	require.InDelta(t, 300, summary.PendingIncome, 1e-9)
}
