// Package interpret wraps the external natural-language interpretation
// collaborator. It is a pure transform from (text, catalog context) to
// candidate draft rows; the aggregator performs the merge.
package interpret

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/nhanban-huy/nhan-ban-photo-print/internal/metrics"
	"github.com/nhanban-huy/nhan-ban-photo-print/internal/usecase/draft"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoItems is advisory: the service produced nothing usable. The
	// caller reports it and leaves the draft untouched.
	ErrNoItems = errors.New("no items produced")
)

// CatalogEntry is the context handed to the interpretation service so
// it can price known shop services.
type CatalogEntry struct {
	Name         string `json:"name"`
	DefaultPrice int64  `json:"defaultPrice"`
}

// Candidate is one raw item from the interpretation service.
type Candidate struct {
	Service   string  `json:"service"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Note      string  `json:"note,omitempty"`
}

// Parser is the external collaborator: text in, candidates out.
// Shorthand normalization (quantity/price slang, service synonyms) is
// the parser's job, driven by the catalog context.
type Parser interface {
	Parse(ctx context.Context, text string, catalog []CatalogEntry) ([]Candidate, error)
}

type Usecase struct {
	parser Parser
}

func New(parser Parser) *Usecase {
	return &Usecase{parser: parser}
}

// Interpret turns free-form customer text into draft rows. Every
// failure mode — transport error, malformed payload, empty result —
// collapses to ErrNoItems so the draft is never corrupted.
func (u *Usecase) Interpret(ctx context.Context, text string, catalog []CatalogEntry) ([]draft.Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidInput
	}

	candidates, err := u.parser.Parse(ctx, text, catalog)
	if err != nil {
		log.WithError(err).Warn("interpretation call failed")
		metrics.InterpretRequests.WithLabelValues("error").Inc()
		return nil, ErrNoItems
	}

	items := make([]draft.Item, 0, len(candidates))
	for _, c := range candidates {
		service := strings.TrimSpace(c.Service)
		if service == "" {
			continue
		}
		qty := int(c.Quantity)
		if qty < 0 {
			qty = 0
		}
		price := int64(c.UnitPrice)
		if price < 0 {
			price = 0
		}
		// Sequence numbers are finalized at commit; interpreted rows
		// enter the draft with STT 0 and a fresh local identity.
		items = append(items, draft.Item{
			ID:        uuid.NewString(),
			STT:       0,
			Service:   service,
			Quantity:  qty,
			UnitPrice: price,
			Note:      strings.TrimSpace(c.Note),
		})
	}

	if len(items) == 0 {
		metrics.InterpretRequests.WithLabelValues("empty").Inc()
		return nil, ErrNoItems
	}

	metrics.InterpretRequests.WithLabelValues("ok").Inc()
	return items, nil
}
