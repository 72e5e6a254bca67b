// Package tariff prices flight legs from a snapshot of the active freight table.
package tariff

import (
	"context"
	"sort"

	"github.com/Domenick1991/airroutes/internal/domain"
	"github.com/Domenick1991/airroutes/internal/routing"
)

const DefaultService = "STANDARD"

type lane struct {
	origin      string
	destination string
}

// Table answers quotes from in-memory rows; it never performs I/O per leg.
type Table struct {
	byLane           map[lane][]domain.Tariff
	preferredService string
	missingCost      float64
}

type Option func(*Table)

func WithPreferredService(service string) Option {
	return func(t *Table) {
		if service != "" {
			t.preferredService = domain.NormalizeCode(service)
		}
	}
}

// WithMissingCost sets the price of a leg with no tariff at all. Non-positive
// values are ignored.
func WithMissingCost(cost float64) Option {
	return func(t *Table) {
		if cost > 0 {
			t.missingCost = cost
		}
	}
}

func NewTable(rows []domain.Tariff, opts ...Option) *Table {
	t := &Table{
		byLane:           make(map[lane][]domain.Tariff),
		preferredService: DefaultService,
		missingCost:      routing.MissingTariffCost,
	}
	for _, opt := range opts {
		opt(t)
	}
	for _, r := range rows {
		if r.Rate <= 0 {
			continue
		}
		r.Origin = domain.NormalizeCode(r.Origin)
		r.Destination = domain.NormalizeCode(r.Destination)
		r.Carrier = domain.NormalizeCode(r.Carrier)
		r.Service = domain.NormalizeCode(r.Service)
		k := lane{r.Origin, r.Destination}
		t.byLane[k] = append(t.byLane[k], r)
	}
	for k := range t.byLane {
		rows := t.byLane[k]
		sort.SliceStable(rows, func(i, j int) bool { return t.better(rows[i], rows[j]) })
	}
	return t
}

// better orders rows of one lane: preferred service first, then lower rate, then
// carrier and service names.
func (t *Table) better(a, b domain.Tariff) bool {
	ap, bp := a.Service == t.preferredService, b.Service == t.preferredService
	if ap != bp {
		return ap
	}
	if a.Rate != b.Rate {
		return a.Rate < b.Rate
	}
	if a.Carrier != b.Carrier {
		return a.Carrier < b.Carrier
	}
	return a.Service < b.Service
}

// Quote prices a leg. It tries the operating carrier's own table first, then any
// other carrier on the same lane, then falls back to the missing-tariff cost. Only
// the first case is Exact.
func (t *Table) Quote(_ context.Context, origin, destination, carrier string, weight float64) (domain.TariffQuote, error) {
	carrier = domain.NormalizeCode(carrier)
	rows := t.byLane[lane{domain.NormalizeCode(origin), domain.NormalizeCode(destination)}]

	for _, r := range rows {
		if r.Carrier == carrier {
			return quote(r, weight, true), nil
		}
	}
	if len(rows) > 0 {
		return quote(rows[0], weight, false), nil
	}
	return domain.TariffQuote{
		Cost:    t.missingCost,
		Weight:  weight,
		Service: routing.UnpricedService,
		Carrier: carrier,
	}, nil
}

func quote(r domain.Tariff, weight float64, exact bool) domain.TariffQuote {
	return domain.TariffQuote{
		Cost:    r.Rate * weight,
		Rate:    r.Rate,
		Weight:  weight,
		Service: r.Service,
		Carrier: r.Carrier,
		Exact:   exact,
	}
}

var _ routing.TariffLookup = (*Table)(nil)
