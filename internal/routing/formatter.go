package routing

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Domenick1991/airroutes/internal/domain"
	"github.com/dustin/go-humanize"
)

// AirportDirectory resolves airport display data in one batch. Unknown codes are
// absent from the returned map.
type AirportDirectory interface {
	Airports(ctx context.Context, codes []string) (map[string]domain.AirportInfo, error)
}

type FareBreakdown struct {
	Rate          float64 `json:"rate"`
	Service       string  `json:"service"`
	TariffCarrier string  `json:"tariff_carrier"`
	Weight        float64 `json:"weight"`
	Cost          float64 `json:"cost"`
	CostFormatted string  `json:"cost_formatted"`
	Exact         bool    `json:"exact"`
}

type FormattedLeg struct {
	Carrier       string             `json:"carrier"`
	FlightNumber  string             `json:"flight_number"`
	Date          string             `json:"date"`
	DepartureTime string             `json:"departure_time"`
	ArrivalTime   string             `json:"arrival_time"`
	Origin        domain.AirportInfo `json:"origin"`
	Destination   domain.AirportInfo `json:"destination"`
	Fare          FareBreakdown      `json:"fare"`
}

type FormattedItinerary struct {
	Category        Category       `json:"category"`
	Label           string         `json:"label"`
	TotalDuration   string         `json:"total_duration"`
	DurationMinutes int            `json:"duration_minutes"`
	TotalCost       string         `json:"total_cost"`
	TotalCostRaw    float64        `json:"total_cost_raw"`
	Stops           int            `json:"stops"`
	CarrierSwitches int            `json:"carrier_switches"`
	MeanAffinity    float64        `json:"mean_affinity"`
	TariffMissing   bool           `json:"tariff_missing"`
	Score           float64        `json:"score"`
	Legs            []FormattedLeg `json:"legs"`
}

// Options maps every category name to its itinerary, nil when the slot is empty.
type Options map[Category]*FormattedItinerary

var labels = map[Category]string{
	CategoryRecommended: "Recommended",
	CategoryDirect:      "Direct flight",
	CategoryFastest:     "Fastest",
	CategoryCheapest:    "Cheapest",
	CategorySameCarrier: "Connection (same carrier)",
	CategoryInterline:   "Interline (multiple carriers)",
}

// EmptyOptions returns an Options value with every slot present and empty.
func EmptyOptions() Options {
	opts := make(Options, len(Categories))
	for _, c := range Categories {
		opts[c] = nil
	}
	return opts
}

type Formatter struct {
	airports AirportDirectory
	currency string
	logger   *slog.Logger
}

func NewFormatter(airports AirportDirectory, currency string, logger *slog.Logger) *Formatter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Formatter{airports: airports, currency: currency, logger: logger}
}

// Format renders every populated slot. Airport metadata is fetched once for all
// codes of all selected itineraries; a failed lookup degrades to raw codes.
func (f *Formatter) Format(ctx context.Context, sel Selection) Options {
	opts := EmptyOptions()
	if len(sel) == 0 {
		return opts
	}

	info := f.lookupAirports(ctx, sel)
	for cat, c := range sel {
		opts[cat] = f.formatCandidate(cat, c, info)
	}
	return opts
}

func (f *Formatter) lookupAirports(ctx context.Context, sel Selection) map[string]domain.AirportInfo {
	seen := make(map[string]struct{})
	for _, c := range sel {
		for _, l := range c.Legs {
			seen[l.Origin] = struct{}{}
			seen[l.Destination] = struct{}{}
		}
	}
	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	if f.airports == nil {
		return nil
	}
	info, err := f.airports.Airports(ctx, codes)
	if err != nil {
		f.logger.WarnContext(ctx, "airport metadata unavailable, using raw codes", "codes", codes, "error", err)
		return nil
	}
	return info
}

func (f *Formatter) formatCandidate(cat Category, c Candidate, info map[string]domain.AirportInfo) *FormattedItinerary {
	out := &FormattedItinerary{
		Category:        cat,
		Label:           labels[cat],
		TotalDuration:   FormatDuration(c.Duration),
		DurationMinutes: int(c.Duration / time.Minute),
		TotalCost:       FormatMoney(f.currency, c.TotalCost),
		TotalCostRaw:    c.TotalCost,
		Stops:           c.Stops,
		CarrierSwitches: c.CarrierSwitches,
		MeanAffinity:    c.MeanAffinity,
		TariffMissing:   c.TariffMissing,
		Score:           c.Score,
		Legs:            make([]FormattedLeg, 0, len(c.Legs)),
	}

	for i, l := range c.Legs {
		var q domain.TariffQuote
		if i < len(c.Quotes) {
			q = c.Quotes[i]
		}
		tariffCarrier := q.Carrier
		if tariffCarrier == "" {
			tariffCarrier = l.Carrier
		}
		out.Legs = append(out.Legs, FormattedLeg{
			Carrier:       l.Carrier,
			FlightNumber:  l.FlightNumber,
			Date:          l.DepartureDate.Format("02/01/2006"),
			DepartureTime: l.DepartureTime.String(),
			ArrivalTime:   l.ArrivalTime.String(),
			Origin:        airportOrCode(info, l.Origin),
			Destination:   airportOrCode(info, l.Destination),
			Fare: FareBreakdown{
				Rate:          q.Rate,
				Service:       q.Service,
				TariffCarrier: tariffCarrier,
				Weight:        q.Weight,
				Cost:          q.Cost,
				CostFormatted: FormatMoney(f.currency, q.Cost),
				Exact:         q.Exact,
			},
		})
	}
	return out
}

func airportOrCode(info map[string]domain.AirportInfo, code string) domain.AirportInfo {
	if a, ok := info[code]; ok {
		a.IATA = code
		if a.Name == "" {
			a.Name = code
		}
		return a
	}
	return domain.AirportInfo{IATA: code, Name: code}
}

// FormatDuration renders "HH:MM", or "Nd HH:MM" past one day.
func FormatDuration(d time.Duration) string {
	total := int(d / time.Minute)
	days, rest := total/(24*60), total%(24*60)
	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d", days, rest/60, rest%60)
	}
	return fmt.Sprintf("%02d:%02d", rest/60, rest%60)
}

// FormatMoney renders an amount with thousands grouping, e.g. "R$ 1,234.50".
func FormatMoney(symbol string, amount float64) string {
	v := humanize.FormatFloat("#,###.##", amount)
	if symbol == "" {
		return v
	}
	return symbol + " " + v
}
