package order

import (
	"context"
	"encoding/json"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/repository/postgres/docstore"
	orderuc "github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/order"
)

const keyPrefix = "orders/"

// Repo stores committed orders in the document store, one blob per
// order id. Implements orderuc.Store.
type Repo struct {
	docs *docstore.Store
}

func NewRepo(docs *docstore.Store) *Repo {
	return &Repo{docs: docs}
}

func (r *Repo) Save(ctx context.Context, o orderuc.Order) error {
	return r.docs.Put(ctx, keyPrefix+o.ID, o)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*orderuc.Order, error) {
	var o orderuc.Order
	found, err := r.docs.Get(ctx, keyPrefix+id, &o)
	if err != nil || !found {
		return nil, err
	}
	return &o, nil
}

func (r *Repo) List(ctx context.Context) ([]orderuc.Order, error) {
	raws, err := r.docs.ListPrefix(ctx, keyPrefix)
	if err != nil {
		return nil, err
	}

	out := make([]orderuc.Order, 0, len(raws))
	for _, raw := range raws {
		var o orderuc.Order
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}
