package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type mockStore struct {
	products map[string]Product
}

func newMockStore(products ...Product) *mockStore {
	m := &mockStore{products: map[string]Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockStore) FindByID(_ context.Context, id string) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *mockStore) List(_ context.Context) ([]Product, error) {
	out := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockStore) Save(_ context.Context, p Product) error {
	m.products[p.ID] = p
	return nil
}

type recordingCache struct {
	stocks map[string]int
}

func (c *recordingCache) SetStock(_ context.Context, id string, stock int) error {
	if c.stocks == nil {
		c.stocks = map[string]int{}
	}
	c.stocks[id] = stock
	return nil
}

func TestFindByID(t *testing.T) {
	uc := New(newMockStore(Product{ID: "p1", Name: "Vở ô ly", Stock: 3}), nil)

	p, err := uc.FindByID(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, "Vở ô ly", p.Name)

	// Absence is a normal answer, not an error.
	p, err = uc.FindByID(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, p)

	_, err = uc.FindByID(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearchByNameSubstring(t *testing.T) {
	uc := New(newMockStore(
		Product{ID: "p1", Name: "Vở ô ly 96 trang"},
		Product{ID: "p2", Name: "Bút bi Thiên Long"},
		Product{ID: "p3", Name: "Vở kẻ ngang"},
	), nil)

	got, err := uc.Search(context.Background(), "vở")
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = uc.Search(context.Background(), "THIÊN")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "p2", got[0].ID)

	got, err = uc.Search(context.Background(), "  ")
	require.NoError(t, err)
	require.Len(t, got, 3, "blank query returns everything")

	got, err = uc.Search(context.Background(), "máy in")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestCreateValidation(t *testing.T) {
	uc := New(newMockStore(), nil)

	_, err := uc.Create(context.Background(), CreateInput{Type: TypeBook, Name: "  "})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Create(context.Background(), CreateInput{Type: "FOOD", Name: "Bánh mì"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Create(context.Background(), CreateInput{Type: TypeBook, Name: "Sổ tay", Stock: -1})
	require.ErrorIs(t, err, ErrInvalidInput)

	p, err := uc.Create(context.Background(), CreateInput{
		Type: TypeStationery, Name: "  Bút bi  ", Stock: 20, ImportPrice: 3000, SalePrice: 5000,
	})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.Equal(t, "Bút bi", p.Name)
	require.Equal(t, 20, p.Stock)
}

func TestStockIn(t *testing.T) {
	store := newMockStore(Product{ID: "p1", Name: "Vở ô ly", Stock: 3})
	cache := &recordingCache{}
	uc := New(store, cache)

	p, err := uc.StockIn(context.Background(), "p1", 7)
	require.NoError(t, err)
	require.Equal(t, 10, p.Stock)
	require.Equal(t, 10, cache.stocks["p1"])

	_, err = uc.StockIn(context.Background(), "p1", 0)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.StockIn(context.Background(), "missing", 5)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDecrementStockFloorsAtZero(t *testing.T) {
	store := newMockStore(Product{ID: "p1", Name: "Vở ô ly", Stock: 2})
	cache := &recordingCache{}
	uc := New(store, cache)

	require.NoError(t, uc.DecrementStock(context.Background(), "p1", 5))

	p, err := uc.FindByID(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, 0, p.Stock)
	require.Equal(t, 0, cache.stocks["p1"])

	// Decrementing an already-empty shelf stays at zero.
	require.NoError(t, uc.DecrementStock(context.Background(), "p1", 1))
	p, err = uc.FindByID(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, 0, p.Stock)
}

func TestDecrementStockAbsentIDIsNoOp(t *testing.T) {
	store := newMockStore()
	uc := New(store, nil)

	require.NoError(t, uc.DecrementStock(context.Background(), "gone", 3))
	require.Empty(t, store.products)
}

func TestDecrementStockRejectsNegativeAmount(t *testing.T) {
	uc := New(newMockStore(Product{ID: "p1", Stock: 5}), nil)
	require.ErrorIs(t, uc.DecrementStock(context.Background(), "p1", -1), ErrInvalidInput)
}
