package preset

import (
	"context"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/repository/postgres/docstore"
	"github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/draft"
)

const key = "presets"

// defaults seed the quick-pick catalog on first run; the shop edits it
// in place afterwards.
var defaults = []draft.Preset{
	{ID: "ps-photo", Name: "Photocopy", DefaultPrice: 500, Category: "In ấn"},
	{ID: "ps-print", Name: "In ấn", DefaultPrice: 1000, Category: "In ấn"},
	{ID: "ps-binding", Name: "Đóng sách", DefaultPrice: 15000, Category: "Gia công"},
	{ID: "ps-laminate", Name: "Ép plastic", DefaultPrice: 10000, Category: "Gia công"},
}

// Repo stores the preset service catalog as a single document.
type Repo struct {
	docs *docstore.Store
}

func NewRepo(docs *docstore.Store) *Repo {
	return &Repo{docs: docs}
}

func (r *Repo) List(ctx context.Context) ([]draft.Preset, error) {
	var out []draft.Preset
	found, err := r.docs.Get(ctx, key, &out)
	if err != nil {
		return nil, err
	}
	if !found {
		return defaults, nil
	}
	return out, nil
}

func (r *Repo) Save(ctx context.Context, presets []draft.Preset) error {
	return r.docs.Put(ctx, key, presets)
}
