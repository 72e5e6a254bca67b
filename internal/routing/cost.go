package routing

import (
	"context"

	"github.com/Domenick1991/airroutes/internal/domain"
)

// MissingTariffCost is charged for a leg whose quote could not be obtained. It keeps
// unpriced itineraries from looking free while leaving costs comparable.
const MissingTariffCost = 99999.0

// UnpricedService names the service of a synthetic quote.
const UnpricedService = "UNPRICED"

// TariffLookup prices one leg. Implementations return a fallback quote with
// Exact=false for unknown lanes rather than an error.
type TariffLookup interface {
	Quote(ctx context.Context, origin, destination, carrier string, weight float64) (domain.TariffQuote, error)
}

type Cost struct {
	Total         float64
	Legs          []domain.TariffQuote
	TariffMissing bool
	// MissingLegs counts legs priced from a fallback or default tariff.
	MissingLegs int
}

// EstimateCost quotes every leg with the operating carrier. A failed quote does not
// abort the itinerary; the leg is charged MissingTariffCost and flagged.
func EstimateCost(ctx context.Context, lookup TariffLookup, legs []domain.Segment, weight float64) Cost {
	cost := Cost{Legs: make([]domain.TariffQuote, 0, len(legs))}
	for _, leg := range legs {
		quote, err := lookup.Quote(ctx, leg.Origin, leg.Destination, leg.Carrier, weight)
		if err != nil || (!quote.Exact && quote.Cost <= 0) {
			quote = domain.TariffQuote{
				Cost:    MissingTariffCost,
				Weight:  weight,
				Service: UnpricedService,
				Carrier: leg.Carrier,
			}
		}
		if !quote.Exact {
			cost.TariffMissing = true
			cost.MissingLegs++
		}
		cost.Total += quote.Cost
		cost.Legs = append(cost.Legs, quote)
	}
	return cost
}
