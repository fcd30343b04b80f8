package ormstore

import "time"

// Models mirror the Postgres schema that the external loader populates.
// Primary keys are named ID so GORM infers belongs-to for Listing.Host and
// Listing.Neighbourhood and has-one/has-many for the listing extensions.

type Host struct {
	ID                    int64     `gorm:"primaryKey;autoIncrement:false;column:host_id"`
	URL                   string    `gorm:"column:host_url;not null"`
	Name                  string    `gorm:"column:host_name;not null"`
	Since                 time.Time `gorm:"column:host_since;type:date;not null"`
	Location              *string   `gorm:"column:host_location"`
	About                 *string   `gorm:"column:host_about"`
	ResponseTime          *string   `gorm:"column:host_response_time"`
	ResponseRate          *float64  `gorm:"column:host_response_rate"`
	AcceptanceRate        *float64  `gorm:"column:host_acceptance_rate"`
	IsSuperhost           bool      `gorm:"column:host_is_superhost;not null"`
	ThumbnailURL          string    `gorm:"column:host_thumbnail_url;not null"`
	PictureURL            string    `gorm:"column:host_picture_url;not null"`
	Neighbourhood         *string   `gorm:"column:host_neighbourhood"`
	ListingsCount         int       `gorm:"column:host_listings_count;not null"`
	TotalListingsCount    int       `gorm:"column:host_total_listings_count;not null"`
	Verifications         string    `gorm:"column:host_verifications;not null"`
	HasProfilePic         bool      `gorm:"column:host_has_profile_pic;not null"`
	IdentityVerified      bool      `gorm:"column:host_identity_verified;not null"`
	ListingCountBreakdown *HostListingsCount
}

func (Host) TableName() string { return "hosts" }

type HostListingsCount struct {
	HostID            int64 `gorm:"primaryKey;autoIncrement:false;column:host_id"`
	TotalCount        int   `gorm:"column:host_listings_total_count;not null"`
	EntireHomesCount  int   `gorm:"column:host_listings_entire_homes_count;not null"`
	PrivateRoomsCount int   `gorm:"column:host_listings_private_rooms_count;not null"`
	SharedRoomsCount  int   `gorm:"column:host_listings_shared_rooms_count;not null"`
}

func (HostListingsCount) TableName() string { return "host_listings_count" }

type Neighbourhood struct {
	ID   int    `gorm:"primaryKey;column:neighbourhood_id"`
	Name string `gorm:"column:neighbourhood;not null"`
}

func (Neighbourhood) TableName() string { return "neighbourhoods" }

type Listing struct {
	ID              int64          `gorm:"primaryKey;autoIncrement:false;column:listing_id"`
	HostID          int64          `gorm:"column:host_id;not null;index"`
	Host            *Host          `gorm:"constraint:OnDelete:CASCADE"`
	NeighbourhoodID int            `gorm:"column:neighbourhood_id;not null;index"`
	Neighbourhood   *Neighbourhood `gorm:"constraint:OnDelete:CASCADE"`
	Latitude        float64        `gorm:"column:latitude;not null"`
	Longitude       float64        `gorm:"column:longitude;not null"`
	Accommodates    int            `gorm:"column:accommodates;not null"`
	Bathrooms       *float64       `gorm:"column:bathrooms;type:decimal(5,2)"`
	Bedrooms        *float64       `gorm:"column:bedrooms;type:decimal(5,2)"`
	Beds            *float64       `gorm:"column:beds;type:decimal(5,2)"`
	Price           *float64       `gorm:"column:price;type:decimal(10,2)"`
	// Served as minimum_nights instead of MinMaxNight.MinimumNights.
	MinimumNights *float64 `gorm:"column:minimum_nights;type:decimal(5,2)"`

	Categorical  *ListingCategorical
	Availability *Availability
	MinMaxNight  *MinMaxNight
	ReviewStats  *ListingReviews
	Reviews      []Review
	Calendar     []CalendarDay
}

func (Listing) TableName() string { return "listings" }

type ListingCategorical struct {
	ListingID            int64   `gorm:"primaryKey;autoIncrement:false;column:listing_id"`
	Name                 string  `gorm:"column:listing_name;not null"`
	HoverDescription     *string `gorm:"column:hover_description"`
	Description          *string `gorm:"column:description"`
	URL                  string  `gorm:"column:listing_url;not null"`
	NeighborhoodOverview *string `gorm:"column:neighborhood_overview"`
	PictureURL           string  `gorm:"column:picture_url;not null"`
	PropertyType         string  `gorm:"column:property_type;not null"`
	RoomType             string  `gorm:"column:room_type;not null"`
	Amenities            string  `gorm:"column:amenities;not null"`
	BathroomsText        *string `gorm:"column:bathrooms_text"`
	License              *string `gorm:"column:license"`
}

func (ListingCategorical) TableName() string { return "listing_categorical" }

type Availability struct {
	ListingID           int64     `gorm:"primaryKey;autoIncrement:false;column:listing_id"`
	HasAvailability     bool      `gorm:"column:has_availability;not null"`
	Availability30      int       `gorm:"column:availability_30;not null"`
	Availability60      int       `gorm:"column:availability_60;not null"`
	Availability90      int       `gorm:"column:availability_90;not null"`
	Availability365     int       `gorm:"column:availability_365;not null"`
	CalendarLastScraped time.Time `gorm:"column:calendar_last_scraped;type:date;not null"`
	InstantBookable     bool      `gorm:"column:instant_bookable;not null"`
}

func (Availability) TableName() string { return "availability" }

type MinMaxNight struct {
	ListingID           int64    `gorm:"primaryKey;autoIncrement:false;column:listing_id"`
	MinimumNights       *float64 `gorm:"column:minimum_nights;type:decimal(5,2)"`
	MaximumNights       float64  `gorm:"column:maximum_nights;type:decimal(5,2);not null"`
	MinimumMinimum      float64  `gorm:"column:minimum_minimum_nights;type:decimal(5,2);not null"`
	MaximumMinimum      float64  `gorm:"column:maximum_minimum_nights;type:decimal(5,2);not null"`
	MinimumMaximum      float64  `gorm:"column:minimum_maximum_nights;type:decimal(5,2);not null"`
	MaximumMaximum      float64  `gorm:"column:maximum_maximum_nights;type:decimal(5,2);not null"`
	MinimumNightsAvgNTM float64  `gorm:"column:minimum_nights_avg_ntm;type:decimal(5,2);not null"`
	MaximumNightsAvgNTM float64  `gorm:"column:maximum_nights_avg_ntm;type:decimal(5,2);not null"`
}

func (MinMaxNight) TableName() string { return "min_max_nights" }

type ListingReviews struct {
	ListingID           int64      `gorm:"primaryKey;autoIncrement:false;column:listing_id"`
	NumberOfReviews     int        `gorm:"column:number_of_reviews;not null"`
	NumberOfReviewsLTM  int        `gorm:"column:number_of_reviews_ltm;not null"`
	NumberOfReviewsL30D int        `gorm:"column:number_of_reviews_l30d;not null"`
	FirstReview         *time.Time `gorm:"column:first_review;type:date"`
	LastReview          *time.Time `gorm:"column:last_review;type:date"`
	ScoresRating        *float64   `gorm:"column:review_scores_rating;type:decimal(5,2)"`
	ScoresAccuracy      *float64   `gorm:"column:review_scores_accuracy;type:decimal(5,2)"`
	ScoresCleanliness   *float64   `gorm:"column:review_scores_cleanliness;type:decimal(5,2)"`
	ScoresCheckin       *float64   `gorm:"column:review_scores_checkin;type:decimal(5,2)"`
	ScoresCommunication *float64   `gorm:"column:review_scores_communication;type:decimal(5,2)"`
	ScoresLocation      *float64   `gorm:"column:review_scores_location;type:decimal(5,2)"`
	ScoresValue         *float64   `gorm:"column:review_scores_value;type:decimal(5,2)"`
	PerMonth            *float64   `gorm:"column:reviews_per_month;type:decimal(5,2)"`
}

func (ListingReviews) TableName() string { return "listing_reviews" }

type Review struct {
	ID           int64     `gorm:"primaryKey;column:review_id"`
	ListingID    int64     `gorm:"column:listing_id;not null;index"`
	Date         time.Time `gorm:"column:review_date;type:date;not null"`
	ReviewerID   int64     `gorm:"column:reviewer_id;not null"`
	ReviewerName *string   `gorm:"column:reviewer_name"`
	Comments     *string   `gorm:"column:review_comments"`
}

func (Review) TableName() string { return "reviews" }

type CalendarDay struct {
	ID            int       `gorm:"primaryKey;column:id"`
	ListingID     int64     `gorm:"column:listing_id;not null;index"`
	Date          time.Time `gorm:"column:date;type:date;not null;index"`
	Available     bool      `gorm:"column:available;not null"`
	Price         float64   `gorm:"column:price;type:decimal(10,2);not null"`
	MinimumNights int       `gorm:"column:minimum_nights;not null"`
	MaximumNights int       `gorm:"column:maximum_nights;not null"`
}

func (CalendarDay) TableName() string { return "calendar" }

// Metadata is declared for the schema only; the ORM backend does not serve it.
type Metadata struct {
	ScrapeDate time.Time `gorm:"column:scrape_date;type:date;primaryKey"`
}

func (Metadata) TableName() string { return "metadata" }

// All lists every model in dependency order.
func All() []any {
	return []any{
		&Host{}, &HostListingsCount{}, &Neighbourhood{}, &Listing{},
		&ListingCategorical{}, &Availability{}, &MinMaxNight{}, &ListingReviews{},
		&Review{}, &CalendarDay{}, &Metadata{},
	}
}
