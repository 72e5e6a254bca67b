package routing

import (
	"testing"
	"time"

	"github.com/Domenick1991/airroutes/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItineraryDuration_Nonstop(t *testing.T) {
	d, err := ItineraryDuration([]domain.Segment{seg("Y", "300", "A", "C", day1, "07:00", "11:00")})

	require.NoError(t, err)
	assert.Equal(t, 4*time.Hour, d)
}

func TestItineraryDuration_OvernightLastLeg(t *testing.T) {
	d, err := ItineraryDuration([]domain.Segment{
		seg("X", "1", "A", "B", day1, "18:00", "19:00"),
		seg("X", "2", "B", "C", day1, "22:00", "01:30"),
	})

	require.NoError(t, err)
	assert.Equal(t, 7*time.Hour+30*time.Minute, d)
}

func TestItineraryDuration_MultiDay(t *testing.T) {
	d, err := ItineraryDuration([]domain.Segment{
		seg("X", "1", "A", "B", day1, "08:00", "09:00"),
		seg("X", "2", "B", "C", day1.AddDate(0, 0, 1), "20:00", "21:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, 37*time.Hour, d)
}

func TestItineraryDuration_Unschedulable(t *testing.T) {
	// last leg is dated two weeks before the first one
	_, err := ItineraryDuration([]domain.Segment{
		seg("X", "1", "A", "B", day1, "08:00", "09:00"),
		seg("X", "2", "B", "C", day1.AddDate(0, 0, -14), "10:00", "11:00"),
	})

	assert.ErrorIs(t, err, ErrUnschedulable)
}

func TestItineraryDuration_DayCorrectionWithinBound(t *testing.T) {
	d, err := ItineraryDuration([]domain.Segment{
		seg("X", "1", "A", "B", day1, "08:00", "09:00"),
		seg("X", "2", "B", "C", day1.AddDate(0, 0, -3), "10:00", "11:00"),
	})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, d, time.Duration(0))
	assert.Equal(t, 3*time.Hour, d)
}

func TestComputeMetrics(t *testing.T) {
	legs := []domain.Segment{
		seg("X", "1", "A", "B", day1, "08:00", "09:00"),
		seg("X", "2", "B", "C", day1, "11:00", "12:00"),
		seg("Y", "3", "C", "D", day1, "14:00", "15:00"),
	}
	scores := domain.CarrierScores{"X": 80, "Y": 20}

	m, err := ComputeMetrics(legs, scores)

	require.NoError(t, err)
	assert.Equal(t, 7*time.Hour, m.Duration)
	assert.Equal(t, 2, m.Stops)
	assert.Equal(t, 1, m.CarrierSwitches)
	assert.InDelta(t, 60.0, m.MeanAffinity, 1e-9)
}

func TestComputeMetrics_UnknownCarrierIsNeutral(t *testing.T) {
	m, err := ComputeMetrics([]domain.Segment{seg("Q", "1", "A", "B", day1, "08:00", "09:00")}, nil)

	require.NoError(t, err)
	assert.Equal(t, float64(domain.NeutralAffinity), m.MeanAffinity)
	assert.Zero(t, m.Stops)
	assert.Zero(t, m.CarrierSwitches)
}

func TestComputeMetrics_NoLegs(t *testing.T) {
	_, err := ComputeMetrics(nil, nil)
	assert.Error(t, err)
}

func TestCountCarrierSwitches(t *testing.T) {
	legs := []domain.Segment{
		seg("X", "1", "A", "B", day1, "08:00", "09:00"),
		seg("Y", "2", "B", "C", day1, "11:00", "12:00"),
		seg("X", "3", "C", "D", day1, "14:00", "15:00"),
	}

	assert.Equal(t, 2, CountCarrierSwitches(legs))
	assert.Zero(t, CountCarrierSwitches(legs[:1]))
}
