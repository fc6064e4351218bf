// Package order validates an authoring draft and commits it: identity
// and timestamps are stamped, totals computed, matched ledger stock
// decremented, and the finalized order persisted.
package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/metrics"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNoItems           = errors.New("order needs at least one service line")
	ErrCustomerRequired  = errors.New("customer name and phone are required")
	ErrVATFieldsRequired = errors.New("VAT invoice requires company name, tax code and company address")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotFound          = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid status")
)

const vatRate = 0.08

// LedgerProduct is the slice of an inventory product the commit engine
// needs: identity for the decrement, name and stock for the error
// message.
type LedgerProduct struct {
	ID    string
	Name  string
	Stock int
}

// Ledger is the stock-bearing collaborator. FindByID returns
// (nil, nil) for an absent id; DecrementStock floors at zero.
type Ledger interface {
	FindByID(ctx context.Context, id string) (*LedgerProduct, error)
	DecrementStock(ctx context.Context, id string, amount int) error
}

// Store persists committed orders.
type Store interface {
	Save(ctx context.Context, o Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
}

type Usecase struct {
	store  Store
	ledger Ledger
}

func New(store Store, ledger Ledger) *Usecase {
	return &Usecase{store: store, ledger: ledger}
}

// Commit runs the validation rules in order, failing on the first
// violated one, then performs the commit transaction. Validation
// failures abort before any ledger or store mutation.
func (u *Usecase) Commit(ctx context.Context, in CommitInput) (*Order, error) {
	// Rule 1: unlabeled rows are placeholders, silently excluded.
	items := make([]Item, 0, len(in.Items))
	for _, it := range in.Items {
		if strings.TrimSpace(it.Service) == "" {
			continue
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	// Rule 2: customer identity.
	if strings.TrimSpace(in.Customer.Name) == "" || strings.TrimSpace(in.Customer.Phone) == "" {
		return nil, ErrCustomerRequired
	}

	// Rule 3: per-item stock sufficiency for catalog-backed rows. An
	// absent ledger entry passes: the reference may have been retired
	// by another terminal mid-edit.
	for _, it := range items {
		if it.ProductID == nil {
			continue
		}
		p, err := u.ledger.FindByID(ctx, *it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		if it.Quantity > p.Stock {
			return nil, fmt.Errorf("%w: product=%q available=%d requested=%d",
				ErrInsufficientStock, p.Name, p.Stock, it.Quantity)
		}
	}

	// Rule 4: VAT-mandated company fields.
	if in.HasVat {
		if strings.TrimSpace(in.Customer.CompanyName) == "" ||
			strings.TrimSpace(in.Customer.TaxCode) == "" ||
			strings.TrimSpace(in.Customer.CompanyAddress) == "" {
			return nil, ErrVATFieldsRequired
		}
	}

	var subTotal int64
	for i := range items {
		items[i].STT = i + 1
		subTotal += int64(items[i].Quantity) * items[i].UnitPrice
	}

	var vat int64
	if in.HasVat {
		vat = int64(math.Round(float64(subTotal) * vatRate))
	}

	o := Order{
		ID:            newOrderID(),
		CreatedAt:     time.Now(),
		Customer:      in.Customer,
		Items:         items,
		SubTotal:      subTotal,
		VAT:           vat,
		Total:         subTotal + vat,
		HasVat:        in.HasVat,
		PaymentStatus: PaymentPending,
		WorkStatus:    WorkNotStarted,
		PaymentMethod: MethodTransfer,
		EmployeeID:    in.EmployeeID,
	}

	if err := u.store.Save(ctx, o); err != nil {
		return nil, err
	}

	// Decrement after the order is durable. The floor-at-zero clamp in
	// the ledger covers the multi-terminal race between validation and
	// commit; stock never goes negative.
	for _, it := range items {
		if it.ProductID == nil {
			continue
		}
		if err := u.ledger.DecrementStock(ctx, *it.ProductID, it.Quantity); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"order_id":   o.ID,
				"product_id": *it.ProductID,
			}).Error("stock decrement failed after commit")
		}
	}

	metrics.OrdersCreated.Inc()
	metrics.OrderTotalAmount.Add(float64(o.Total))
	return &o, nil
}

func (u *Usecase) GetByID(ctx context.Context, id string) (*Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	o, err := u.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNotFound
	}
	return o, nil
}

// List returns orders newest first. Staff only see their own orders;
// admins see everything.
func (u *Usecase) List(ctx context.Context, employeeID string, isAdmin bool) ([]Order, error) {
	all, err := u.store.List(ctx)
	if err != nil {
		return nil, err
	}

	out := all
	if !isAdmin {
		out = make([]Order, 0, len(all))
		for _, o := range all {
			if o.EmployeeID == employeeID {
				out = append(out, o)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (u *Usecase) UpdatePaymentStatus(ctx context.Context, id string, in UpdateStatusInput) (*Order, error) {
	switch in.Status {
	case PaymentPending, PaymentPaid, PaymentCancelled:
	default:
		return nil, ErrInvalidStatus
	}
	return u.mutate(ctx, id, func(o *Order) { o.PaymentStatus = in.Status })
}

func (u *Usecase) UpdatePaymentMethod(ctx context.Context, id string, in UpdateMethodInput) (*Order, error) {
	switch in.Method {
	case MethodCash, MethodTransfer:
	default:
		return nil, ErrInvalidStatus
	}
	return u.mutate(ctx, id, func(o *Order) { o.PaymentMethod = in.Method })
}

func (u *Usecase) UpdateWorkStatus(ctx context.Context, id string, in UpdateStatusInput) (*Order, error) {
	switch in.Status {
	case WorkNotStarted, WorkCompleted, WorkCancelled:
	default:
		return nil, ErrInvalidStatus
	}
	return u.mutate(ctx, id, func(o *Order) { o.WorkStatus = in.Status })
}

func (u *Usecase) mutate(ctx context.Context, id string, apply func(*Order)) (*Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	o, err := u.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNotFound
	}

	apply(o)
	if err := u.store.Save(ctx, *o); err != nil {
		return nil, err
	}
	return o, nil
}

// newOrderID generates the shop-local human-readable code.
func newOrderID() string {
	return fmt.Sprintf("NB-%d", 1000+rand.Intn(9000))
}
