package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	orderrepo "github.com/nhanban-huy/nhan-ban-photo-print/internal/repository/postgres/order"
	"github.com/nhanban-huy/nhan-ban-photo-print/internal/repository/postgres/testutil"
	orderuc "github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/order"
)

func sampleOrder(id string) orderuc.Order {
	return orderuc.Order{
		ID:        id,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Customer:  orderuc.Customer{Name: "Lan", Phone: "0901"},
		Items: []orderuc.Item{
			{ID: "r1", STT: 1, Service: "Photo A4", Quantity: 50, UnitPrice: 500},
		},
		SubTotal:      25000,
		Total:         25000,
		PaymentStatus: orderuc.PaymentPending,
		WorkStatus:    orderuc.WorkNotStarted,
		PaymentMethod: orderuc.MethodTransfer,
		EmployeeID:    "emp-1",
	}
}

func TestSaveAndGetByID(t *testing.T) {
	repo := orderrepo.NewRepo(testutil.MustOpenDocstore(t))
	ctx := context.Background()

	want := sampleOrder("NB-1234")
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.GetByID(ctx, "NB-1234")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.Customer, got.Customer)
	require.Equal(t, want.Items, got.Items)
	require.Equal(t, want.SubTotal, got.SubTotal)

	got, err = repo.GetByID(ctx, "NB-0000")
	require.NoError(t, err)
	require.Nil(t, got, "absent order is (nil, nil)")
}

func TestSaveOverwritesStatus(t *testing.T) {
	repo := orderrepo.NewRepo(testutil.MustOpenDocstore(t))
	ctx := context.Background()

	o := sampleOrder("NB-2000")
	require.NoError(t, repo.Save(ctx, o))

	o.PaymentStatus = orderuc.PaymentPaid
	require.NoError(t, repo.Save(ctx, o))

	got, err := repo.GetByID(ctx, "NB-2000")
	require.NoError(t, err)
	require.Equal(t, orderuc.PaymentPaid, got.PaymentStatus)
}

func TestList(t *testing.T) {
	repo := orderrepo.NewRepo(testutil.MustOpenDocstore(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleOrder("NB-3001")))
	require.NoError(t, repo.Save(ctx, sampleOrder("NB-3002")))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
