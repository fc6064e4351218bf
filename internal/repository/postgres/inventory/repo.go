package inventory

import (
	"context"
	"encoding/json"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/repository/postgres/docstore"
	invuc "github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/inventory"
)

const keyPrefix = "inventory/"

// Repo stores ledger products in the document store. Implements
// invuc.Store; absence is (nil, nil), never an error.
type Repo struct {
	docs *docstore.Store
}

func NewRepo(docs *docstore.Store) *Repo {
	return &Repo{docs: docs}
}

func (r *Repo) FindByID(ctx context.Context, id string) (*invuc.Product, error) {
	var p invuc.Product
	found, err := r.docs.Get(ctx, keyPrefix+id, &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) List(ctx context.Context) ([]invuc.Product, error) {
	raws, err := r.docs.ListPrefix(ctx, keyPrefix)
	if err != nil {
		return nil, err
	}

	out := make([]invuc.Product, 0, len(raws))
	for _, raw := range raws {
		var p invuc.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *Repo) Save(ctx context.Context, p invuc.Product) error {
	return r.docs.Put(ctx, keyPrefix+p.ID, p)
}
