package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/Domenick1991/airroutes/internal/domain"
	"github.com/Domenick1991/airroutes/internal/repository"
	"gopkg.in/yaml.v3"
)

// fixture is the YAML form of a network snapshot.
type fixture struct {
	Carriers map[string]int `yaml:"carriers"`
	Segments []struct {
		ID          int64  `yaml:"id"`
		Carrier     string `yaml:"carrier"`
		Flight      string `yaml:"flight"`
		Origin      string `yaml:"origin"`
		Destination string `yaml:"destination"`
		Date        string `yaml:"date"`
		Departure   string `yaml:"departure"`
		Arrival     string `yaml:"arrival"`
	} `yaml:"segments"`
	Tariffs []struct {
		Origin      string  `yaml:"origin"`
		Destination string  `yaml:"destination"`
		Carrier     string  `yaml:"carrier"`
		Service     string  `yaml:"service"`
		Rate        float64 `yaml:"rate"`
	} `yaml:"tariffs"`
	Airports []struct {
		IATA string   `yaml:"iata"`
		Name string   `yaml:"name"`
		Lat  *float64 `yaml:"lat"`
		Lon  *float64 `yaml:"lon"`
	} `yaml:"airports"`
	Cities []struct {
		Name string  `yaml:"name"`
		UF   string  `yaml:"uf"`
		Lat  float64 `yaml:"lat"`
		Lon  float64 `yaml:"lon"`
	} `yaml:"cities"`
}

func loadFixture(path string) (repository.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return repository.Snapshot{}, fmt.Errorf("read fixture: %w", err)
	}
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return repository.Snapshot{}, fmt.Errorf("parse fixture: %w", err)
	}

	snap := repository.Snapshot{Carriers: domain.CarrierScores{}}
	for code, score := range f.Carriers {
		snap.Carriers[domain.NormalizeCode(code)] = score
	}
	for i, s := range f.Segments {
		date, err := time.Parse(domain.DateLayout, s.Date)
		if err != nil {
			return repository.Snapshot{}, fmt.Errorf("segment %d: %w", i+1, err)
		}
		dep, err := domain.ParseClock(s.Departure)
		if err != nil {
			return repository.Snapshot{}, fmt.Errorf("segment %d: %w", i+1, err)
		}
		arr, err := domain.ParseClock(s.Arrival)
		if err != nil {
			return repository.Snapshot{}, fmt.Errorf("segment %d: %w", i+1, err)
		}
		snap.Segments = append(snap.Segments, domain.Segment{
			ID:            s.ID,
			Carrier:       s.Carrier,
			FlightNumber:  s.Flight,
			Origin:        s.Origin,
			Destination:   s.Destination,
			DepartureDate: date,
			DepartureTime: dep,
			ArrivalTime:   arr,
		})
	}
	for _, t := range f.Tariffs {
		snap.Tariffs = append(snap.Tariffs, domain.Tariff{
			Origin:      domain.NormalizeCode(t.Origin),
			Destination: domain.NormalizeCode(t.Destination),
			Carrier:     domain.NormalizeCode(t.Carrier),
			Service:     domain.NormalizeCode(t.Service),
			Rate:        t.Rate,
		})
	}
	for _, a := range f.Airports {
		snap.Airports = append(snap.Airports, domain.AirportInfo{IATA: a.IATA, Name: a.Name, Latitude: a.Lat, Longitude: a.Lon})
	}
	for _, c := range f.Cities {
		snap.Cities = append(snap.Cities, domain.City{Name: c.Name, UF: c.UF, Latitude: c.Lat, Longitude: c.Lon})
	}
	return snap, nil
}
