package routing

import (
	"strings"
	"time"

	"github.com/Domenick1991/airroutes/internal/domain"
)

// Candidate is one feasible itinerary with its derived cost and metrics.
type Candidate struct {
	Legs            []domain.Segment
	Quotes          []domain.TariffQuote
	Duration        time.Duration
	TotalCost       float64
	Stops           int
	CarrierSwitches int
	MeanAffinity    float64
	TariffMissing   bool
	Score           float64
}

func NewCandidate(legs []domain.Segment, cost Cost, m Metrics) Candidate {
	return Candidate{
		Legs:            legs,
		Quotes:          cost.Legs,
		Duration:        m.Duration,
		TotalCost:       cost.Total,
		Stops:           m.Stops,
		CarrierSwitches: m.CarrierSwitches,
		MeanAffinity:    m.MeanAffinity,
		TariffMissing:   cost.TariffMissing,
	}
}

func (c Candidate) Origin() string {
	if len(c.Legs) == 0 {
		return ""
	}
	return c.Legs[0].Origin
}

func (c Candidate) Destination() string {
	if len(c.Legs) == 0 {
		return ""
	}
	return c.Legs[len(c.Legs)-1].Destination
}

// CarrierChain concatenates the carrier codes of every leg.
func (c Candidate) CarrierChain() string {
	var b strings.Builder
	for _, l := range c.Legs {
		b.WriteString(l.Carrier)
	}
	return b.String()
}

// Signature identifies the concrete legs of the itinerary.
func (c Candidate) Signature() string {
	parts := make([]string, 0, len(c.Legs))
	for _, l := range c.Legs {
		parts = append(parts, l.Carrier+l.FlightNumber+"@"+l.DepartureDate.Format(domain.DateLayout)+"T"+l.DepartureTime.Seconds()+":"+l.Origin+l.Destination)
	}
	return strings.Join(parts, "|")
}
