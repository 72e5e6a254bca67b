package routing

import (
	"sort"
	"time"

	"github.com/Domenick1991/airroutes/internal/domain"
)

// Rules bounds path enumeration and connection feasibility.
type Rules struct {
	MaxHops       int
	MinConnection time.Duration
	MaxConnection time.Duration
}

func DefaultRules() Rules {
	return Rules{
		MaxHops:       DefaultMaxHops,
		MinConnection: time.Hour,
		MaxConnection: 48 * time.Hour,
	}
}

// ValidatePath picks one concrete segment per hop of path so that the chain is
// chronologically feasible. It returns false when any hop has no acceptable
// segment; partial itineraries are never returned.
//
// For every hop the edge's segments are tried in departure order, with segments of
// the previous leg's carrier moved to the front. The first hop must depart at or
// after start; later hops must depart between MinConnection and MaxConnection after
// the previous arrival.
func ValidatePath(g *Graph, path []string, start time.Time, rules Rules) ([]domain.Segment, bool) {
	if len(path) < 2 {
		return nil, false
	}

	chosen := make([]domain.Segment, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		options := g.Segments(path[i], path[i+1])
		if len(options) == 0 {
			return nil, false
		}

		var prev *domain.Segment
		if len(chosen) > 0 {
			prev = &chosen[len(chosen)-1]
		}

		next, ok := pickSegment(orderCandidates(options, prev), prev, start, rules)
		if !ok {
			return nil, false
		}
		chosen = append(chosen, next)
	}
	return chosen, true
}

// orderCandidates sorts a copy of the edge's segments by departure and, when a
// previous leg exists, stable-partitions the previous carrier first.
func orderCandidates(options []domain.Segment, prev *domain.Segment) []domain.Segment {
	ordered := make([]domain.Segment, len(options))
	copy(ordered, options)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.DepartureDate.Equal(b.DepartureDate) {
			return a.DepartureDate.Before(b.DepartureDate)
		}
		if a.DepartureTime != b.DepartureTime {
			return a.DepartureTime < b.DepartureTime
		}
		if a.Carrier != b.Carrier {
			return a.Carrier < b.Carrier
		}
		if a.FlightNumber != b.FlightNumber {
			return a.FlightNumber < b.FlightNumber
		}
		return a.ID < b.ID
	})

	if prev == nil {
		return ordered
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Carrier == prev.Carrier && ordered[j].Carrier != prev.Carrier
	})
	return ordered
}

func pickSegment(ordered []domain.Segment, prev *domain.Segment, start time.Time, rules Rules) (domain.Segment, bool) {
	if prev == nil {
		for _, s := range ordered {
			if !s.DepartureAt().Before(start) {
				return s, true
			}
		}
		return domain.Segment{}, false
	}

	arrival := prev.ArrivalAt()
	earliest := arrival.Add(rules.MinConnection)
	latest := arrival.Add(rules.MaxConnection)
	for _, s := range ordered {
		dep := s.DepartureAt()
		if !dep.Before(earliest) && !dep.After(latest) {
			return s, true
		}
	}
	return domain.Segment{}, false
}
