package domain

// ListingRow is one listing joined with its host, neighbourhood, categorical
// and review-aggregate rows. Every column coming from a joined table is a
// pointer: nil means NULL or a missing related row.
type ListingRow struct {
	ListingID    int64
	Latitude     float64
	Longitude    float64
	Accommodates int
	Price        *float64

	// Read from listings, not min_max_nights. The related table's decimal
	// failed to convert in the original backend and the source was switched.
	MinimumNights *float64

	HoverDescription *string
	ListingURL       *string
	PropertyType     *string
	RoomType         *string
	License          *string

	NumberOfReviews     *int
	NumberOfReviewsLTM  *int
	NumberOfReviewsL30D *int
	FirstReview         *Date
	LastReview          *Date
	ReviewScoresRating  *float64
	ReviewsPerMonth     *float64

	HostID                 int64
	HostName               *string
	HostIdentityVerified   *bool
	HostListingsCount      *int
	HostTotalListingsCount *int

	Neighbourhood *string
}

// MapListing is the flat record served by /api/listings.
type MapListing struct {
	ListingID              int64    `json:"listing_id"`
	Latitude               float64  `json:"latitude"`
	Longitude              float64  `json:"longitude"`
	HoverDescription       *string  `json:"hover_description"`
	ListingURL             string   `json:"listing_url"`
	Price                  float64  `json:"price"`
	PropertyType           string   `json:"property_type"`
	RoomType               string   `json:"room_type"`
	Accommodates           int      `json:"accommodates"`
	NumberOfReviews        int      `json:"number_of_reviews"`
	NumberOfReviewsLTM     int      `json:"number_of_reviews_ltm"`
	NumberOfReviewsL30D    int      `json:"number_of_reviews_l30d"`
	FirstReview            *Date    `json:"first_review"`
	LastReview             *Date    `json:"last_review"`
	ReviewScoresRating     float64  `json:"review_scores_rating"`
	ReviewsPerMonth        float64  `json:"reviews_per_month"`
	HostID                 int64    `json:"host_id"`
	HostName               string   `json:"host_name"`
	HostIdentityVerified   bool     `json:"host_identity_verified"`
	HostListingsCount      int      `json:"host_listings_count"`
	HostTotalListingsCount int      `json:"host_total_listings_count"`
	License                *string  `json:"license"`
	Neighbourhood          string   `json:"neighbourhood"`
	MinimumNights          *float64 `json:"minimum_nights"`
}
