package routing

import (
	"testing"

	"github.com/Domenick1991/airroutes/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildGraph_AccumulatesSegmentsPerEdge(t *testing.T) {
	g := BuildGraph([]domain.Segment{
		seg("X", "1", "GRU", "REC", day1, "08:00", "11:00"),
		seg("Y", "2", "GRU", "REC", day1, "09:00", "12:00"),
		seg("X", "3", "REC", "FOR", day1, "13:00", "14:00"),
	}, domain.CarrierScores{})

	assert.Len(t, g.Segments("GRU", "REC"), 2)
	assert.Len(t, g.Segments("REC", "FOR"), 1)
	assert.Nil(t, g.Segments("REC", "GRU"))
	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())
}

func TestBuildGraph_DropsExcludedCarriers(t *testing.T) {
	g := BuildGraph([]domain.Segment{
		seg("X", "1", "GRU", "REC", day1, "08:00", "11:00"),
		seg("Y", "2", "GRU", "SSA", day1, "09:00", "11:00"),
		seg("Z", "3", "GRU", "FOR", day1, "09:00", "12:00"),
	}, domain.CarrierScores{"Y": 0, "Z": -10})

	assert.True(t, g.HasNode("REC"))
	assert.False(t, g.HasNode("SSA"))
	assert.False(t, g.HasNode("FOR"))
	assert.Equal(t, []string{"REC"}, g.Neighbors("GRU"))
}

func TestBuildGraph_NormalizesCodes(t *testing.T) {
	g := BuildGraph([]domain.Segment{
		seg(" la ", "1", "gru ", " rec", day1, "08:00", "11:00"),
	}, domain.CarrierScores{})

	segments := g.Segments("GRU", "REC")
	if assert.Len(t, segments, 1) {
		assert.Equal(t, "LA", segments[0].Carrier)
		assert.Equal(t, "GRU", segments[0].Origin)
		assert.Equal(t, "REC", segments[0].Destination)
	}
}

func TestGraph_NeighborsSorted(t *testing.T) {
	g := BuildGraph([]domain.Segment{
		seg("X", "1", "GRU", "SSA", day1, "08:00", "10:00"),
		seg("X", "2", "GRU", "BSB", day1, "08:00", "10:00"),
		seg("X", "3", "GRU", "REC", day1, "08:00", "10:00"),
	}, nil)

	assert.Equal(t, []string{"BSB", "REC", "SSA"}, g.Neighbors("GRU"))
	assert.Nil(t, g.Neighbors("REC"))
}
