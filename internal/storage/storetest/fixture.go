// Package storetest seeds a small, fully known dataset into an in-memory
// sqlite database so both stores can be tested against the same rows.
package storetest

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"airbnb_hub/internal/storage/ormstore"
)

// Listing ids in the fixture.
const (
	FullListing      int64 = 100 // every related row present
	NullPriceListing int64 = 101 // price NULL, no review stats, minimum_nights 3
	BareListing      int64 = 102 // no categorical row, review stats with NULL scores
)

// OpenSQLite returns a migrated in-memory database. The pool is pinned to one
// connection because every sqlite :memory: connection is its own database.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := ormstore.Open("sqlite", ":memory:", nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := ormstore.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// Seed inserts the fixture rows. Parents go first so it also works with
// foreign keys enforced.
func Seed(t testing.TB, db *gorm.DB) {
	t.Helper()
	must := func(what string, err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seed %s: %v", what, err)
		}
	}

	must("neighbourhoods", db.Create(&[]ormstore.Neighbourhood{
		{ID: 1, Name: "Downtown"},
		{ID: 2, Name: "Navy Yard"},
	}).Error)

	must("hosts", db.Create(&[]ormstore.Host{
		{
			ID: 11, URL: "https://example.test/users/11", Name: "Ana", Since: Day(2015, 6, 1),
			IsSuperhost: true, ThumbnailURL: "t11", PictureURL: "p11",
			ListingsCount: 2, TotalListingsCount: 3, Verifications: "['email', 'phone']",
			HasProfilePic: true, IdentityVerified: true,
		},
		{
			ID: 12, URL: "https://example.test/users/12", Name: "Bob", Since: Day(2019, 2, 14),
			ThumbnailURL: "t12", PictureURL: "p12",
			ListingsCount: 1, TotalListingsCount: 1, Verifications: "['email']",
		},
	}).Error)
	must("host listing counts", db.Create(&ormstore.HostListingsCount{
		HostID: 11, TotalCount: 2, EntireHomesCount: 1, PrivateRoomsCount: 1,
	}).Error)

	must("listings", db.Create(&[]ormstore.Listing{
		{ID: FullListing, HostID: 11, NeighbourhoodID: 1, Latitude: 38.9, Longitude: -77.03, Accommodates: 4, Price: ptr(150.0), MinimumNights: ptr(2.0)},
		{ID: NullPriceListing, HostID: 11, NeighbourhoodID: 1, Latitude: 38.91, Longitude: -77.02, Accommodates: 2, MinimumNights: ptr(3.0)},
		{ID: BareListing, HostID: 12, NeighbourhoodID: 2, Latitude: 38.87, Longitude: -77.0, Accommodates: 1, Price: ptr(90.0)},
	}).Error)

	must("categorical", db.Create(&[]ormstore.ListingCategorical{
		{ListingID: FullListing, Name: "Loft", HoverDescription: ptr("Sunny loft"), URL: "https://example.test/rooms/100",
			PictureURL: "pic100", PropertyType: "Entire loft", RoomType: "Entire home/apt", Amenities: "[]", License: ptr("L-100")},
		{ListingID: NullPriceListing, Name: "Room", URL: "https://example.test/rooms/101",
			PictureURL: "pic101", PropertyType: "Private room in home", RoomType: "Private room", Amenities: "[]"},
	}).Error)

	must("review stats", db.Create(&[]ormstore.ListingReviews{
		{ListingID: FullListing, NumberOfReviews: 42, NumberOfReviewsLTM: 10, NumberOfReviewsL30D: 1,
			FirstReview: ptr(Day(2020, 1, 5)), LastReview: ptr(Day(2024, 2, 20)), ScoresRating: ptr(4.8), PerMonth: ptr(0.9)},
		{ListingID: BareListing, NumberOfReviews: 0},
	}).Error)

	// Disagrees with listings.minimum_nights on purpose.
	must("min max nights", db.Create(&ormstore.MinMaxNight{
		ListingID: NullPriceListing, MinimumNights: ptr(7.0), MaximumNights: 30,
	}).Error)

	must("availability", db.Create(&ormstore.Availability{
		ListingID: FullListing, HasAvailability: true, Availability30: 12, CalendarLastScraped: Day(2024, 3, 21),
	}).Error)

	must("reviews", db.Create(&ormstore.Review{
		ListingID: FullListing, Date: Day(2024, 2, 20), ReviewerID: 9, ReviewerName: ptr("Cy"),
	}).Error)

	must("calendar", db.Create(&[]ormstore.CalendarDay{
		{ListingID: FullListing, Date: Day(2024, 1, 1), Available: true, Price: 100, MinimumNights: 2, MaximumNights: 30},
		{ListingID: NullPriceListing, Date: Day(2024, 1, 1), Available: true, Price: 120, MinimumNights: 3, MaximumNights: 30},
		{ListingID: FullListing, Date: Day(2024, 1, 2), Available: true, Price: 600, MinimumNights: 2, MaximumNights: 30},
		{ListingID: NullPriceListing, Date: Day(2024, 1, 2), Available: false, Price: 80, MinimumNights: 3, MaximumNights: 30},
		{ListingID: NullPriceListing, Date: Day(2024, 1, 3), Available: true, Price: 500, MinimumNights: 3, MaximumNights: 30},
		{ListingID: BareListing, Date: Day(2024, 1, 1), Available: true, Price: 90, MinimumNights: 1, MaximumNights: 7},
	}).Error)

	must("metadata", db.Create(&ormstore.Metadata{ScrapeDate: Day(2024, 3, 21)}).Error)
}
