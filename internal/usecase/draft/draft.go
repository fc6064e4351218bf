// Package draft holds the mutable line-item sequence for one
// order-authoring session and merges the three input sources: manual
// row edits, catalog selection and interpreted items.
package draft

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrRowNotFound = errors.New("draft row not found")
	ErrOutOfStock  = errors.New("product out of stock")
)

const (
	ProductTypeBook       = "BOOK"
	ProductTypeStationery = "STATIONERY"
)

// Item is one draft row. Unset numerics are 0 and unset strings are
// empty; the sequence never contains a partially-shaped row.
type Item struct {
	ID        string  `json:"id"`
	STT       int     `json:"stt"`
	Service   string  `json:"service"`
	Quantity  int     `json:"quantity"`
	UnitPrice int64   `json:"unitPrice"`
	Note      string  `json:"note"`
	ProductID *string `json:"productId,omitempty"`
	Image     *string `json:"image,omitempty"`
}

// CatalogProduct is the slice of an inventory product the aggregator
// needs for a catalog selection.
type CatalogProduct struct {
	ID        string
	Type      string
	Name      string
	SalePrice int64
	Stock     int
	Image     *string
}

// Preset is a quick-pick shop service with a default price.
type Preset struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DefaultPrice int64  `json:"defaultPrice"`
	Category     string `json:"category"`
}

// RowPatch is a partial in-place row update. ProductID is deliberately
// absent: a product reference is immutable once set.
type RowPatch struct {
	Service   *string `json:"service"`
	Quantity  *int    `json:"quantity"`
	UnitPrice *int64  `json:"unitPrice"`
	Note      *string `json:"note"`
	Image     *string `json:"image"`
}

// Draft serializes every mutation behind one mutex, so the three input
// modalities can trigger concurrently without racing each other.
type Draft struct {
	mu   sync.Mutex
	rows []Item
}

func New() *Draft {
	return &Draft{rows: []Item{emptyRow()}}
}

func emptyRow() Item {
	return Item{ID: uuid.NewString(), Quantity: 1}
}

// Rows returns a snapshot of the current sequence.
func (d *Draft) Rows() []Item {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Item, len(d.rows))
	copy(out, d.rows)
	return out
}

// AddFreeRow appends an empty row for manual entry.
func (d *Draft) AddFreeRow() Item {
	d.mu.Lock()
	defer d.mu.Unlock()
	row := emptyRow()
	d.rows = append(d.rows, row)
	return row
}

// RemoveRow drops the row; the form never presents zero rows, so
// removing the last one resets the sequence to a single empty row.
func (d *Draft) RemoveRow(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.indexOf(id)
	if idx < 0 {
		return ErrRowNotFound
	}

	d.rows = append(d.rows[:idx], d.rows[idx+1:]...)
	if len(d.rows) == 0 {
		d.rows = []Item{emptyRow()}
	}
	return nil
}

// UpdateRow applies a field patch in place without reordering.
func (d *Draft) UpdateRow(id string, p RowPatch) (Item, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.indexOf(id)
	if idx < 0 {
		return Item{}, ErrRowNotFound
	}

	row := &d.rows[idx]
	if p.Service != nil {
		row.Service = *p.Service
	}
	if p.Quantity != nil {
		row.Quantity = *p.Quantity
	}
	if p.UnitPrice != nil {
		row.UnitPrice = *p.UnitPrice
	}
	if p.Note != nil {
		row.Note = *p.Note
	}
	if p.Image != nil {
		row.Image = p.Image
	}
	return *row, nil
}

// ApplyCatalogSelection adds an inventory product with the
// fill-or-append policy: when the trailing row is still unlabeled it
// is overwritten in place, otherwise a new row is appended.
func (d *Draft) ApplyCatalogSelection(p CatalogProduct) (Item, error) {
	if p.Stock <= 0 {
		return Item{}, ErrOutOfStock
	}

	productID := p.ID
	row := Item{
		ID:        uuid.NewString(),
		Service:   catalogLabel(p),
		Quantity:  1,
		UnitPrice: p.SalePrice,
		Note:      "Hàng bán lẻ",
		ProductID: &productID,
		Image:     p.Image,
	}
	d.fillOrAppend(row)
	return row, nil
}

// ApplyPreset adds a quick-pick service row with the same
// fill-or-append policy as catalog selection.
func (d *Draft) ApplyPreset(p Preset) Item {
	row := Item{
		ID:        uuid.NewString(),
		Service:   p.Name,
		Quantity:  1,
		UnitPrice: p.DefaultPrice,
	}
	d.fillOrAppend(row)
	return row
}

// ApplyInterpreted merges a batch of interpreted items: rows without a
// service label are placeholders and are dropped, already-populated
// rows keep their position ahead of the new batch.
func (d *Draft) ApplyInterpreted(items []Item) {
	d.mu.Lock()
	defer d.mu.Unlock()

	kept := d.rows[:0]
	for _, r := range d.rows {
		if strings.TrimSpace(r.Service) != "" {
			kept = append(kept, r)
		}
	}
	d.rows = append(kept, items...)
	if len(d.rows) == 0 {
		d.rows = []Item{emptyRow()}
	}
}

func (d *Draft) fillOrAppend(row Item) {
	d.mu.Lock()
	defer d.mu.Unlock()

	last := len(d.rows) - 1
	if last >= 0 && strings.TrimSpace(d.rows[last].Service) == "" {
		d.rows[last] = row
		return
	}
	d.rows = append(d.rows, row)
}

func (d *Draft) indexOf(id string) int {
	for i, r := range d.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func catalogLabel(p CatalogProduct) string {
	if p.Type == ProductTypeBook {
		return "[Sách] " + p.Name
	}
	return "[VPP] " + p.Name
}
