package routing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airroutes/internal/domain"
)

var day1 = domain.Date(2024, time.May, 1)

func seg(carrier, flight, origin, dest string, date time.Time, dep, arr string) domain.Segment {
	d, err := domain.ParseClock(dep)
	if err != nil {
		panic(err)
	}
	a, err := domain.ParseClock(arr)
	if err != nil {
		panic(err)
	}
	return domain.Segment{
		Carrier:       carrier,
		FlightNumber:  flight,
		Origin:        origin,
		Destination:   dest,
		DepartureDate: date,
		DepartureTime: d,
		ArrivalTime:   a,
	}
}

// fakeTariffs prices legs from a fixed table keyed by "ORIG-DEST-CARRIER".
type fakeTariffs struct {
	exact    map[string]float64
	fallback map[string]float64
	failing  map[string]bool
}

func (f fakeTariffs) Quote(_ context.Context, origin, destination, carrier string, weight float64) (domain.TariffQuote, error) {
	key := fmt.Sprintf("%s-%s-%s", origin, destination, carrier)
	if f.failing[key] {
		return domain.TariffQuote{}, errors.New("tariff table unavailable")
	}
	if cost, ok := f.exact[key]; ok {
		return domain.TariffQuote{Cost: cost, Rate: cost / weight, Weight: weight, Service: "STANDARD", Carrier: carrier, Exact: true}, nil
	}
	if cost, ok := f.fallback[key]; ok {
		return domain.TariffQuote{Cost: cost, Rate: cost / weight, Weight: weight, Service: "STANDARD", Carrier: "OTHER"}, nil
	}
	return domain.TariffQuote{Cost: MissingTariffCost, Weight: weight, Service: UnpricedService, Carrier: carrier}, nil
}

// scenarioNetwork is A->B->C on carrier X plus a nonstop A->C on carrier Y.
func scenarioNetwork() []domain.Segment {
	return []domain.Segment{
		seg("X", "100", "A", "B", day1, "08:00", "09:00"),
		seg("X", "200", "B", "C", day1, "11:00", "14:00"),
		seg("Y", "300", "A", "C", day1, "07:00", "11:00"),
	}
}

func scenarioTariffs() fakeTariffs {
	return fakeTariffs{exact: map[string]float64{
		"A-C-Y": 500,
		"A-B-X": 100,
		"B-C-X": 200,
	}}
}

func runPipeline(segments []domain.Segment, scores domain.CarrierScores, tariffs TariffLookup, origin, dest string) []Candidate {
	p := Pipeline{
		Graph:   BuildGraph(segments, scores),
		Scores:  scores,
		Tariffs: tariffs,
		Rules:   DefaultRules(),
		Start:   day1,
		Weight:  100,
	}
	return p.Pair(context.Background(), origin, dest).Candidates
}

// connectionsWithin reports whether every connection of legs honours the window.
func connectionsWithin(legs []domain.Segment, rules Rules) bool {
	for i := 1; i < len(legs); i++ {
		arrival := legs[i-1].ArrivalAt()
		dep := legs[i].DepartureAt()
		if dep.Before(arrival.Add(rules.MinConnection)) || dep.After(arrival.Add(rules.MaxConnection)) {
			return false
		}
	}
	return true
}
