package routing

import (
	"errors"
	"time"

	"github.com/Domenick1991/airroutes/internal/domain"
)

// maxDayCorrections caps the add-a-day loop of ItineraryDuration.
const maxDayCorrections = 10

// ErrUnschedulable marks an itinerary whose arrival cannot be placed after its
// departure within maxDayCorrections days.
var ErrUnschedulable = errors.New("itinerary is unschedulable")

type Metrics struct {
	Duration        time.Duration
	Stops           int
	CarrierSwitches int
	MeanAffinity    float64
}

func ComputeMetrics(legs []domain.Segment, scores domain.CarrierScores) (Metrics, error) {
	if len(legs) == 0 {
		return Metrics{}, errors.New("itinerary has no legs")
	}
	duration, err := ItineraryDuration(legs)
	if err != nil {
		return Metrics{}, err
	}
	return Metrics{
		Duration:        duration,
		Stops:           len(legs) - 1,
		CarrierSwitches: CountCarrierSwitches(legs),
		MeanAffinity:    MeanAffinity(legs, scores),
	}, nil
}

// ItineraryDuration is the time from the first departure to the last arrival.
func ItineraryDuration(legs []domain.Segment) (time.Duration, error) {
	if len(legs) == 0 {
		return 0, nil
	}
	start := legs[0].DepartureAt()
	end := legs[len(legs)-1].ArrivalAt()

	for i := 0; end.Before(start); i++ {
		if i >= maxDayCorrections {
			return 0, ErrUnschedulable
		}
		end = end.AddDate(0, 0, 1)
	}
	return end.Sub(start), nil
}

func CountCarrierSwitches(legs []domain.Segment) int {
	switches := 0
	for i := 1; i < len(legs); i++ {
		if legs[i].Carrier != legs[i-1].Carrier {
			switches++
		}
	}
	return switches
}

func MeanAffinity(legs []domain.Segment, scores domain.CarrierScores) float64 {
	if len(legs) == 0 {
		return domain.NeutralAffinity
	}
	total := 0
	for _, l := range legs {
		total += scores.Score(l.Carrier)
	}
	return float64(total) / float64(len(legs))
}
