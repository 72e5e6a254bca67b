package routing

import (
	"context"
	"time"

	"github.com/Domenick1991/airroutes/internal/domain"
)

// Pipeline carries the request-local inputs shared by every origin/destination
// pair of one search. It is read-only once built, so pairs can run concurrently.
type Pipeline struct {
	Graph   *Graph
	Scores  domain.CarrierScores
	Tariffs TariffLookup
	Rules   Rules
	Start   time.Time
	Weight  float64
}

// PairResult reports the candidates of one pair and what was discarded on the way.
type PairResult struct {
	Candidates        []Candidate
	Paths             int
	Infeasible        int
	Unschedulable     int
	MissingTariffLegs int
}

// Pair enumerates, validates and prices every itinerary from origin to destination.
// A pair with no path, or paths with no feasible schedule, yields no candidates.
func (p Pipeline) Pair(ctx context.Context, origin, destination string) PairResult {
	var res PairResult
	paths := p.Graph.SimplePaths(origin, destination, p.Rules.MaxHops)
	res.Paths = len(paths)

	for _, path := range paths {
		legs, ok := ValidatePath(p.Graph, path, p.Start, p.Rules)
		if !ok {
			res.Infeasible++
			continue
		}
		m, err := ComputeMetrics(legs, p.Scores)
		if err != nil {
			res.Unschedulable++
			continue
		}
		cost := EstimateCost(ctx, p.Tariffs, legs, p.Weight)
		res.MissingTariffLegs += cost.MissingLegs
		res.Candidates = append(res.Candidates, NewCandidate(legs, cost, m))
	}
	return res
}
