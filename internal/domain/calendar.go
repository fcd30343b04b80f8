package domain

// MaxAggregatedPrice is the nightly price ceiling for the price/availability
// aggregation; pricier calendar rows are treated as outliers.
const MaxAggregatedPrice = 500.0

// AvailabilityFilter selects the calendar rows that feed the aggregation.
type AvailabilityFilter struct {
	Available bool
	MaxPrice  float64
}

var DefaultAvailabilityFilter = AvailabilityFilter{Available: true, MaxPrice: MaxAggregatedPrice}

// PriceAvailability is one (neighbourhood, date) group. An empty
// Neighbourhood marks the city-wide rollup.
type PriceAvailability struct {
	Neighbourhood     string  `json:"neighbourhood"`
	Date              Date    `json:"date"`
	AvgPrice          float64 `json:"avg_price"`
	AvailableListings int64   `json:"available_listings"`
}

// Metadata is one row of the metadata table, keyed by column name.
type Metadata map[string]any
