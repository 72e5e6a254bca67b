package domain

// Tariff is one row of the active freight table: the rate per kilogram a carrier
// charges for a service on a lane.
type Tariff struct {
	Origin      string
	Destination string
	Carrier     string
	Service     string
	Rate        float64
}

// TariffQuote is the priced result for a single leg.
type TariffQuote struct {
	Cost    float64
	Rate    float64
	Weight  float64
	Service string
	// Carrier is the carrier whose table produced the price. It differs from the
	// operating carrier when the lookup fell back to another carrier's lane.
	Carrier string
	Exact   bool
}
