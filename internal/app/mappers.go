package app

import (
	"sort"

	"airbnb_hub/internal/domain"
)

/********** tiny helpers **********/

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefF64(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefBool(p *bool) bool {
	return p != nil && *p
}

/********** listings **********/

// mapListing flattens a joined row into the served record. Missing related
// rows become zero values; nullable text and dates stay null.
func mapListing(r domain.ListingRow) domain.MapListing {
	return domain.MapListing{
		ListingID:              r.ListingID,
		Latitude:               r.Latitude,
		Longitude:              r.Longitude,
		HoverDescription:       r.HoverDescription,
		ListingURL:             deref(r.ListingURL),
		Price:                  derefF64(r.Price),
		PropertyType:           deref(r.PropertyType),
		RoomType:               deref(r.RoomType),
		Accommodates:           r.Accommodates,
		NumberOfReviews:        derefInt(r.NumberOfReviews),
		NumberOfReviewsLTM:     derefInt(r.NumberOfReviewsLTM),
		NumberOfReviewsL30D:    derefInt(r.NumberOfReviewsL30D),
		FirstReview:            r.FirstReview,
		LastReview:             r.LastReview,
		ReviewScoresRating:     derefF64(r.ReviewScoresRating),
		ReviewsPerMonth:        derefF64(r.ReviewsPerMonth),
		HostID:                 r.HostID,
		HostName:               deref(r.HostName),
		HostIdentityVerified:   derefBool(r.HostIdentityVerified),
		HostListingsCount:      derefInt(r.HostListingsCount),
		HostTotalListingsCount: derefInt(r.HostTotalListingsCount),
		License:                r.License,
		Neighbourhood:          deref(r.Neighbourhood),
		MinimumNights:          r.MinimumNights,
	}
}

func mapListings(rows []domain.ListingRow) []domain.MapListing {
	out := make([]domain.MapListing, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapListing(r))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ListingID < out[j].ListingID })
	return out
}

/********** price / availability **********/

func lessPA(a, b domain.PriceAvailability) bool {
	if a.Neighbourhood != b.Neighbourhood {
		return a.Neighbourhood < b.Neighbourhood
	}
	return a.Date.Before(b.Date)
}

// collapsePriceAvailability sorts by (neighbourhood, date) using byte order
// and merges repeated pairs into one count-weighted record.
func collapsePriceAvailability(in []domain.PriceAvailability) []domain.PriceAvailability {
	rows := make([]domain.PriceAvailability, len(in))
	for i, r := range in {
		r.Date = domain.NewDate(r.Date.Time)
		rows[i] = r
	}
	sort.SliceStable(rows, func(i, j int) bool { return lessPA(rows[i], rows[j]) })

	out := make([]domain.PriceAvailability, 0, len(rows))
	for _, r := range rows {
		n := len(out)
		if n > 0 && out[n-1].Neighbourhood == r.Neighbourhood && out[n-1].Date == r.Date {
			out[n-1] = merge(out[n-1], r, r.Neighbourhood)
			continue
		}
		out = append(out, r)
	}
	return out
}

func merge(a, b domain.PriceAvailability, neighbourhood string) domain.PriceAvailability {
	total := a.AvailableListings + b.AvailableListings
	m := domain.PriceAvailability{Neighbourhood: neighbourhood, Date: a.Date, AvailableListings: total}
	if total > 0 {
		m.AvgPrice = (a.AvgPrice*float64(a.AvailableListings) + b.AvgPrice*float64(b.AvailableListings)) / float64(total)
	}
	return m
}

// cityRollup builds one record per date across every neighbourhood, keyed
// by the empty neighbourhood name. Rows already keyed that way are ignored.
func cityRollup(rows []domain.PriceAvailability) []domain.PriceAvailability {
	byDate := make(map[domain.Date]domain.PriceAvailability)
	for _, r := range rows {
		if r.Neighbourhood == "" {
			continue
		}
		acc, ok := byDate[r.Date]
		if !ok {
			byDate[r.Date] = domain.PriceAvailability{Date: r.Date, AvgPrice: r.AvgPrice, AvailableListings: r.AvailableListings}
			continue
		}
		byDate[r.Date] = merge(acc, r, "")
	}
	out := make([]domain.PriceAvailability, 0, len(byDate))
	for _, r := range byDate {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func withoutCity(rows []domain.PriceAvailability) []domain.PriceAvailability {
	out := rows[:0:0]
	for _, r := range rows {
		if r.Neighbourhood != "" {
			out = append(out, r)
		}
	}
	return out
}
