package ormstore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"airbnb_hub/internal/adapters/observability"
	"airbnb_hub/internal/domain"
)

const storeLabel = "orm"

type Repo struct{ db *gorm.DB }

func New(db *gorm.DB) *Repo { return &Repo{db: db} }

// read runs fn in one transaction so multi-statement preloads see a single
// snapshot and hold a single pooled connection.
func (r *Repo) read(ctx context.Context, query string, fn func(tx *gorm.DB) error) (err error) {
	start := time.Now()
	defer func() { observability.ObserveQuery(storeLabel, query, err, time.Since(start)) }()
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *Repo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *Repo) ListListings(ctx context.Context) ([]domain.ListingRow, error) {
	var listings []Listing
	err := r.read(ctx, "listings", func(tx *gorm.DB) error {
		return tx.
			Preload("Host").
			Preload("Neighbourhood").
			Preload("Categorical").
			Preload("ReviewStats").
			Order("listing_id").
			Find(&listings).Error
	})
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}

	out := make([]domain.ListingRow, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingRow(l))
	}
	return out, nil
}

// toListingRow checks every related row before reading from it.
func toListingRow(l Listing) domain.ListingRow {
	lr := domain.ListingRow{
		ListingID:     l.ID,
		Latitude:      l.Latitude,
		Longitude:     l.Longitude,
		Accommodates:  l.Accommodates,
		Price:         l.Price,
		MinimumNights: l.MinimumNights,
		HostID:        l.HostID,
	}
	if h := l.Host; h != nil {
		lr.HostName = &h.Name
		lr.HostIdentityVerified = &h.IdentityVerified
		lr.HostListingsCount = &h.ListingsCount
		lr.HostTotalListingsCount = &h.TotalListingsCount
	}
	if n := l.Neighbourhood; n != nil {
		lr.Neighbourhood = &n.Name
	}
	if c := l.Categorical; c != nil {
		lr.HoverDescription = c.HoverDescription
		lr.ListingURL = &c.URL
		lr.PropertyType = &c.PropertyType
		lr.RoomType = &c.RoomType
		lr.License = c.License
	}
	if rs := l.ReviewStats; rs != nil {
		lr.NumberOfReviews = &rs.NumberOfReviews
		lr.NumberOfReviewsLTM = &rs.NumberOfReviewsLTM
		lr.NumberOfReviewsL30D = &rs.NumberOfReviewsL30D
		lr.FirstReview = optDate(rs.FirstReview)
		lr.LastReview = optDate(rs.LastReview)
		lr.ReviewScoresRating = rs.ScoresRating
		lr.ReviewsPerMonth = rs.PerMonth
	}
	return lr
}

func optDate(t *time.Time) *domain.Date {
	if t == nil {
		return nil
	}
	d := domain.NewDate(*t)
	return &d
}

type priceAvailabilityRow struct {
	Neighbourhood     *string
	Date              time.Time
	AvgPrice          float64
	AvailableListings int64
}

func (r *Repo) PriceAvailability(ctx context.Context, f domain.AvailabilityFilter) ([]domain.PriceAvailability, error) {
	var rows []priceAvailabilityRow
	err := r.read(ctx, "price_availability", func(tx *gorm.DB) error {
		return tx.Model(&CalendarDay{}).
			Select("neighbourhoods.neighbourhood AS neighbourhood, calendar.date AS date, "+
				"AVG(calendar.price) AS avg_price, COUNT(calendar.id) AS available_listings").
			Joins("JOIN listings ON listings.listing_id = calendar.listing_id").
			Joins("JOIN neighbourhoods ON neighbourhoods.neighbourhood_id = listings.neighbourhood_id").
			Where("calendar.available = ? AND calendar.price <= ?", f.Available, f.MaxPrice).
			Group("neighbourhoods.neighbourhood, calendar.date").
			Order("neighbourhoods.neighbourhood, calendar.date").
			Scan(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("query price availability: %w", err)
	}

	out := make([]domain.PriceAvailability, 0, len(rows))
	for _, row := range rows {
		pa := domain.PriceAvailability{
			Date:              domain.NewDate(row.Date),
			AvgPrice:          row.AvgPrice,
			AvailableListings: row.AvailableListings,
		}
		if row.Neighbourhood != nil {
			pa.Neighbourhood = *row.Neighbourhood
		}
		out = append(out, pa)
	}
	return out, nil
}
