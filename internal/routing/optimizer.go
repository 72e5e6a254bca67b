package routing

import (
	"cmp"
)

type Category string

const (
	CategoryRecommended Category = "recommended"
	CategoryDirect      Category = "direct"
	CategoryFastest     Category = "fastest"
	CategoryCheapest    Category = "cheapest"
	CategorySameCarrier Category = "same-carrier"
	CategoryInterline   Category = "interline"
)

// Categories lists every result slot in display order.
var Categories = []Category{
	CategoryRecommended,
	CategoryDirect,
	CategoryFastest,
	CategoryCheapest,
	CategorySameCarrier,
	CategoryInterline,
}

// Weights of the composite score. Lower scores are better.
type Weights struct {
	Duration             float64
	Cost                 float64
	Stops                float64
	Affinity             float64
	MissingTariffPenalty float64
}

func DefaultWeights() Weights {
	return Weights{
		Duration:             0.35,
		Cost:                 0.35,
		Stops:                0.15,
		Affinity:             0.15,
		MissingTariffPenalty: 1000,
	}
}

// Selection holds the winner of each category; a missing key means no winner.
type Selection map[Category]Candidate

// Optimize scores the candidates and runs every category reducer over them.
func Optimize(candidates []Candidate, w Weights) Selection {
	scored := ScoreCandidates(candidates, w)

	reducers := map[Category]func([]Candidate) (Candidate, bool){
		CategoryRecommended: SelectRecommended,
		CategoryDirect:      SelectDirect,
		CategoryFastest:     SelectFastest,
		CategoryCheapest:    SelectCheapest,
		CategorySameCarrier: SelectSameCarrier,
		CategoryInterline:   SelectInterline,
	}

	sel := make(Selection, len(reducers))
	for cat, reduce := range reducers {
		if best, ok := reduce(scored); ok {
			sel[cat] = best
		}
	}
	return sel
}

// ScoreCandidates returns a copy of candidates with Score set. Duration and cost are
// min-max normalized over the whole set; a constant column normalizes to 0.
func ScoreCandidates(candidates []Candidate, w Weights) []Candidate {
	out := make([]Candidate, len(candidates))
	copy(out, candidates)
	if len(out) == 0 {
		return out
	}

	minDur, maxDur := out[0].Duration, out[0].Duration
	minCost, maxCost := out[0].TotalCost, out[0].TotalCost
	maxStops := out[0].Stops
	for _, c := range out[1:] {
		minDur, maxDur = min(minDur, c.Duration), max(maxDur, c.Duration)
		minCost, maxCost = min(minCost, c.TotalCost), max(maxCost, c.TotalCost)
		maxStops = max(maxStops, c.Stops)
	}

	for i := range out {
		c := &out[i]
		normDur := normalize(float64(c.Duration), float64(minDur), float64(maxDur))
		normCost := normalize(c.TotalCost, minCost, maxCost)
		stops := 0.0
		if maxStops > 0 {
			stops = float64(c.Stops) / float64(maxStops)
		}
		affinity := (100 - c.MeanAffinity) / 100

		c.Score = w.Duration*normDur + w.Cost*normCost + w.Stops*stops + w.Affinity*affinity
		if c.TariffMissing {
			c.Score += w.MissingTariffPenalty
		}
	}
	return out
}

func normalize(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}

// SelectDirect picks the cheapest nonstop candidate, then the shortest.
func SelectDirect(candidates []Candidate) (Candidate, bool) {
	return selectBest(candidates, func(c Candidate) bool { return c.Stops == 0 }, byCost)
}

// SelectFastest picks the shortest candidate, then the cheapest.
func SelectFastest(candidates []Candidate) (Candidate, bool) {
	return selectBest(candidates, nil, func(a, b Candidate) int {
		return cmp.Or(
			cmp.Compare(a.Duration, b.Duration),
			cmp.Compare(a.TotalCost, b.TotalCost),
			tieBreak(a, b),
		)
	})
}

// SelectCheapest picks the cheapest candidate. Candidates priced from a fallback
// tariff rank after every exactly priced one.
func SelectCheapest(candidates []Candidate) (Candidate, bool) {
	return selectBest(candidates, nil, func(a, b Candidate) int {
		return cmp.Or(
			compareBool(a.TariffMissing, b.TariffMissing),
			byCost(a, b),
		)
	})
}

// SelectSameCarrier picks the best-scored connection flown by a single carrier.
func SelectSameCarrier(candidates []Candidate) (Candidate, bool) {
	return selectBest(candidates, func(c Candidate) bool {
		return c.Stops >= 1 && c.CarrierSwitches == 0
	}, byScore)
}

// SelectInterline picks the best-scored itinerary that changes carrier.
func SelectInterline(candidates []Candidate) (Candidate, bool) {
	return selectBest(candidates, func(c Candidate) bool { return c.CarrierSwitches >= 1 }, byScore)
}

// SelectRecommended picks the best-scored candidate overall.
func SelectRecommended(candidates []Candidate) (Candidate, bool) {
	return selectBest(candidates, nil, byScore)
}

func selectBest(candidates []Candidate, keep func(Candidate) bool, compare func(a, b Candidate) int) (Candidate, bool) {
	var best Candidate
	found := false
	for _, c := range candidates {
		if keep != nil && !keep(c) {
			continue
		}
		if !found || compare(c, best) < 0 {
			best = c
			found = true
		}
	}
	return best, found
}

func byCost(a, b Candidate) int {
	return cmp.Or(
		cmp.Compare(a.TotalCost, b.TotalCost),
		cmp.Compare(a.Duration, b.Duration),
		tieBreak(a, b),
	)
}

func byScore(a, b Candidate) int {
	return cmp.Or(cmp.Compare(a.Score, b.Score), tieBreak(a, b))
}

// tieBreak orders otherwise equal candidates so that selection does not depend on
// the order candidates were produced in.
func tieBreak(a, b Candidate) int {
	return cmp.Or(
		cmp.Compare(a.Stops, b.Stops),
		cmp.Compare(a.Duration, b.Duration),
		cmp.Compare(a.CarrierChain(), b.CarrierChain()),
		cmp.Compare(a.Signature(), b.Signature()),
	)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
