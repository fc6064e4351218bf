// Package inventory is the stock ledger: retail products queried by
// the order form and decremented by the commit engine.
package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/metrics"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("product not found")
)

const (
	TypeBook       = "BOOK"
	TypeStationery = "STATIONERY"
)

type Product struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Image       *string `json:"image,omitempty"`
	Stock       int     `json:"stock"`
	ImportPrice int64   `json:"importPrice"`
	SalePrice   int64   `json:"salePrice"`
}

// Store persists products. FindByID returns (nil, nil) when the id is
// absent — absence is a normal answer for the ledger, not an error.
type Store interface {
	FindByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, p Product) error
}

// StockCache mirrors stock levels for fast cross-process reads. Purely
// best-effort: the document store stays the source of truth.
type StockCache interface {
	SetStock(ctx context.Context, productID string, stock int) error
}

type Usecase struct {
	store Store
	cache StockCache // may be nil
}

func New(store Store, cache StockCache) *Usecase {
	return &Usecase{store: store, cache: cache}
}

func (u *Usecase) FindByID(ctx context.Context, id string) (*Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return u.store.FindByID(ctx, id)
}

func (u *Usecase) List(ctx context.Context) ([]Product, error) {
	return u.store.List(ctx)
}

// Search matches the product name by case-insensitive substring, the
// way the order form's catalog picker filters.
func (u *Usecase) Search(ctx context.Context, query string) ([]Product, error) {
	all, err := u.store.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all, nil
	}

	out := make([]Product, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

type CreateInput struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Image       *string `json:"image"`
	Stock       int     `json:"stock"`
	ImportPrice int64   `json:"importPrice"`
	SalePrice   int64   `json:"salePrice"`
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrInvalidInput
	}
	if in.Type != TypeBook && in.Type != TypeStationery {
		return nil, ErrInvalidInput
	}
	if in.Stock < 0 || in.ImportPrice < 0 || in.SalePrice < 0 {
		return nil, ErrInvalidInput
	}

	p := Product{
		ID:          uuid.NewString(),
		Type:        in.Type,
		Name:        strings.TrimSpace(in.Name),
		Image:       in.Image,
		Stock:       in.Stock,
		ImportPrice: in.ImportPrice,
		SalePrice:   in.SalePrice,
	}
	if err := u.store.Save(ctx, p); err != nil {
		return nil, err
	}
	u.mirrorStock(ctx, p.ID, p.Stock)
	return &p, nil
}

// StockIn adds received quantity, the stocking-workflow counterpart of
// the commit engine's decrement.
func (u *Usecase) StockIn(ctx context.Context, id string, quantity int) (*Product, error) {
	if id == "" || quantity <= 0 {
		return nil, ErrInvalidInput
	}

	p, err := u.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}

	p.Stock += quantity
	if err := u.store.Save(ctx, *p); err != nil {
		return nil, err
	}
	u.mirrorStock(ctx, p.ID, p.Stock)
	return p, nil
}

// DecrementStock lowers stock by amount, floored at zero. An absent id
// is a no-op: the ledger is not assumed authoritative mid-edit in a
// multi-client setting.
func (u *Usecase) DecrementStock(ctx context.Context, id string, amount int) error {
	if amount < 0 {
		return ErrInvalidInput
	}

	p, err := u.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}

	next := p.Stock - amount
	if next < 0 {
		next = 0
	}
	p.Stock = next

	if err := u.store.Save(ctx, *p); err != nil {
		return err
	}
	u.mirrorStock(ctx, p.ID, p.Stock)
	return nil
}

func (u *Usecase) mirrorStock(ctx context.Context, id string, stock int) {
	metrics.InventoryLevel.WithLabelValues(id).Set(float64(stock))
	if u.cache == nil {
		return
	}
	if err := u.cache.SetStock(ctx, id, stock); err != nil {
		log.WithError(err).WithField("product_id", id).Warn("stock cache update failed")
	}
}
