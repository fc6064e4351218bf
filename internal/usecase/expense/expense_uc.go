// Package expense logs shop spending: stock purchases and operational
// costs, stamped with the acting employee.
package expense

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type Expense struct {
	ID            string    `json:"id"`
	Date          time.Time `json:"date"`
	Category      string    `json:"category"`
	ItemName      string    `json:"itemName"`
	Amount        int64     `json:"amount"`
	Note          string    `json:"note,omitempty"`
	EmployeeID    string    `json:"employeeId"`
	SupplierName  string    `json:"supplierName,omitempty"`
	Quantity      int       `json:"quantity,omitempty"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
}

type Store interface {
	Save(ctx context.Context, e Expense) error
	List(ctx context.Context) ([]Expense, error)
}

type Usecase struct {
	store Store
}

func New(store Store) *Usecase {
	return &Usecase{store: store}
}

type CreateInput struct {
	Category      string `json:"category"`
	ItemName      string `json:"itemName"`
	Amount        int64  `json:"amount"`
	Note          string `json:"note"`
	SupplierName  string `json:"supplierName"`
	Quantity      int    `json:"quantity"`
	PaymentMethod string `json:"paymentMethod"`
	EmployeeID    string `json:"-"`
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*Expense, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(in.ItemName) == "" {
		return nil, ErrInvalidInput
	}
	if in.Category == "" {
		in.Category = "Nhập hàng"
	}
	if in.Quantity <= 0 {
		in.Quantity = 1
	}

	e := Expense{
		ID:            uuid.NewString(),
		Date:          time.Now(),
		Category:      in.Category,
		ItemName:      strings.TrimSpace(in.ItemName),
		Amount:        in.Amount,
		Note:          in.Note,
		EmployeeID:    in.EmployeeID,
		SupplierName:  in.SupplierName,
		Quantity:      in.Quantity,
		PaymentMethod: in.PaymentMethod,
	}
	if err := u.store.Save(ctx, e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (u *Usecase) List(ctx context.Context) ([]Expense, error) {
	all, err := u.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date.After(all[j].Date) })
	return all, nil
}
