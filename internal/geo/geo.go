// Package geo holds great-circle helpers for airport lookups.
package geo

import (
	"math"

	"github.com/Domenick1991/airroutes/internal/domain"
)

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometres.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Nearest returns the airport closest to (lat, lon) with its distance rounded to
// one decimal. Airports without coordinates are skipped.
func Nearest(lat, lon float64, airports []domain.AirportInfo) (domain.Airport, bool) {
	var best domain.Airport
	bestDist := math.Inf(1)
	for _, a := range airports {
		if !a.HasCoordinates() {
			continue
		}
		d := Haversine(lat, lon, *a.Latitude, *a.Longitude)
		if d < bestDist || d == bestDist && a.IATA < best.IATA {
			bestDist = d
			best = domain.Airport{AirportInfo: a}
		}
	}
	if math.IsInf(bestDist, 1) {
		return domain.Airport{}, false
	}
	best.DistanceKm = math.Round(bestDist*10) / 10
	return best, true
}
