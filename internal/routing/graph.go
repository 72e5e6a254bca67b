// Package routing searches the flight network for itineraries and ranks them.
//
// The pipeline is: BuildGraph over the active snapshot, SimplePaths per
// origin/destination pair, ValidatePath per node path, then EstimateCost and
// ComputeMetrics per candidate, Optimize over all candidates and finally Format.
// Every value here is request-local; nothing is shared between searches.
package routing

import (
	"sort"

	"github.com/Domenick1991/airroutes/internal/domain"
)

// Graph is a directed multigraph of airports. Each edge holds every segment that
// operates the (origin, destination) pair.
type Graph struct {
	adj   map[string]map[string][]domain.Segment
	nodes map[string]struct{}
	edges int
}

func newGraph() *Graph {
	return &Graph{
		adj:   make(map[string]map[string][]domain.Segment),
		nodes: make(map[string]struct{}),
	}
}

// BuildGraph inserts every segment whose carrier is not excluded by scores.
// Codes are normalized on insertion.
func BuildGraph(segments []domain.Segment, scores domain.CarrierScores) *Graph {
	g := newGraph()
	for _, s := range segments {
		s.Carrier = domain.NormalizeCode(s.Carrier)
		if scores.Excluded(s.Carrier) {
			continue
		}
		s.Origin = domain.NormalizeCode(s.Origin)
		s.Destination = domain.NormalizeCode(s.Destination)
		g.addSegment(s)
	}
	return g
}

func (g *Graph) addSegment(s domain.Segment) {
	g.nodes[s.Origin] = struct{}{}
	g.nodes[s.Destination] = struct{}{}

	out, ok := g.adj[s.Origin]
	if !ok {
		out = make(map[string][]domain.Segment)
		g.adj[s.Origin] = out
	}
	if _, exists := out[s.Destination]; !exists {
		g.edges++
	}
	out[s.Destination] = append(out[s.Destination], s)
}

func (g *Graph) HasNode(code string) bool {
	_, ok := g.nodes[code]
	return ok
}

// Segments returns the segments of the edge from -> to, or nil.
func (g *Graph) Segments(from, to string) []domain.Segment {
	return g.adj[from][to]
}

// Neighbors returns the destinations reachable from a node in one hop, sorted.
func (g *Graph) Neighbors(from string) []string {
	out := g.adj[from]
	if len(out) == 0 {
		return nil
	}
	ids := make([]string, 0, len(out))
	for to := range out {
		ids = append(ids, to)
	}
	sort.Strings(ids)
	return ids
}

func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount counts distinct (origin, destination) pairs, not segments.
func (g *Graph) EdgeCount() int { return g.edges }
