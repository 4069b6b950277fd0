package customers

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	customers map[int64]Customer
	nextID    int64
	nextSeq   int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{customers: make(map[int64]Customer), nextID: 1, nextSeq: 1}
}

func (m *memoryRepo) Get(_ context.Context, id int64) (*Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (m *memoryRepo) List(_ context.Context) ([]Customer, error) {
	out := make([]Customer, 0, len(m.customers))
	for _, c := range m.customers {
		out = append(out, c)
	}
	return out, nil
}

func (m *memoryRepo) Create(_ context.Context, c Customer) (int64, error) {
	for _, existing := range m.customers {
		if existing.CustomerCode == c.CustomerCode {
			return 0, ErrDuplicate
		}
	}
	c.ID = m.nextID
	m.customers[c.ID] = c
	m.nextID++
	return c.ID, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, updates map[string]any) error {
	c, ok := m.customers[id]
	if !ok {
		return ErrNotFound
	}
	if v, ok := updates["name"]; ok {
		c.Name = v.(string)
	}
	if v, ok := updates["email"]; ok {
		email := v.(string)
		c.Email = &email
	}
	m.customers[id] = c
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.customers[id]; !ok {
		return ErrNotFound
	}
	delete(m.customers, id)
	return nil
}

func (m *memoryRepo) GenerateCode(_ context.Context) (string, error) {
	code := fmt.Sprintf("C%04d", m.nextSeq)
	m.nextSeq++
	return code, nil
}

func TestServiceCreateAssignsSequentialCodes(t *testing.T) {
	svc := NewService(newMemoryRepo())

	first, err := svc.Create(context.Background(), CreateCustomerRequest{Name: "Acme Ltd"})
	require.NoError(t, err)
	require.Equal(t, "C0001", first.CustomerCode)

	second, err := svc.Create(context.Background(), CreateCustomerRequest{Name: "Globex"})
	require.NoError(t, err)
	require.Equal(t, "C0002", second.CustomerCode)
}

func TestServiceUpdatePartial(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	email := "billing@acme.test"
	created, err := svc.Create(context.Background(), CreateCustomerRequest{Name: "Acme Ltd", Email: &email})
	require.NoError(t, err)

	newName := "Acme Holdings"
	updated, err := svc.Update(context.Background(), created.ID, UpdateCustomerRequest{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, "Acme Holdings", updated.Name)
	require.NotNil(t, updated.Email)
	require.Equal(t, "billing@acme.test", *updated.Email)
	require.Equal(t, "C0001", updated.CustomerCode)
}

func TestServiceGetMissing(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Get(context.Background(), 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestServiceDelete(t *testing.T) {
	svc := NewService(newMemoryRepo())

	created, err := svc.Create(context.Background(), CreateCustomerRequest{Name: "Acme Ltd"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
