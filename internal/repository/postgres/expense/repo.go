package expense

import (
	"context"
	"encoding/json"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/repository/postgres/docstore"
	expuc "github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/expense"
)

const keyPrefix = "expenses/"

// Repo stores expense entries in the document store. Implements
// expuc.Store.
type Repo struct {
	docs *docstore.Store
}

func NewRepo(docs *docstore.Store) *Repo {
	return &Repo{docs: docs}
}

func (r *Repo) Save(ctx context.Context, e expuc.Expense) error {
	return r.docs.Put(ctx, keyPrefix+e.ID, e)
}

func (r *Repo) List(ctx context.Context) ([]expuc.Expense, error) {
	raws, err := r.docs.ListPrefix(ctx, keyPrefix)
	if err != nil {
		return nil, err
	}

	out := make([]expuc.Expense, 0, len(raws))
	for _, raw := range raws {
		var e expuc.Expense
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
