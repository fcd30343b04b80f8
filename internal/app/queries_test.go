package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"airbnb_hub/internal/app"
	"airbnb_hub/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	rows    []domain.ListingRow
	pa      []domain.PriceAvailability
	err     error
	filters []domain.AvailabilityFilter
}

func (f *fakeRepo) ListListings(ctx context.Context) ([]domain.ListingRow, error) {
	return f.rows, f.err
}

func (f *fakeRepo) PriceAvailability(ctx context.Context, fl domain.AvailabilityFilter) ([]domain.PriceAvailability, error) {
	f.filters = append(f.filters, fl)
	return f.pa, f.err
}

func (f *fakeRepo) Ping(ctx context.Context) error { return f.err }

type fakeMeta struct{ rows []domain.Metadata }

func (m *fakeMeta) ScrapeDates(ctx context.Context) ([]domain.Metadata, error) { return m.rows, nil }

// ---- tests ----

func TestListings_DefaultsForMissingRelations(t *testing.T) {
	repo := &fakeRepo{rows: []domain.ListingRow{{
		ListingID:     7,
		Latitude:      38.9,
		Longitude:     -77.0,
		Accommodates:  2,
		MinimumNights: pfloat(3),
		HostID:        11,
		HostName:      ptr("Ana"),
		Neighbourhood: ptr("Downtown"),
	}}}
	q := app.NewQueryService(repo, nil, false)

	out, err := q.Listings(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(out))
	}
	l := out[0]
	if l.Price != 0 || l.ReviewScoresRating != 0 || l.ReviewsPerMonth != 0 || l.NumberOfReviews != 0 {
		t.Fatalf("expected zero defaults, got %+v", l)
	}
	if l.MinimumNights == nil || *l.MinimumNights != 3 {
		t.Fatalf("expected minimum_nights 3, got %v", l.MinimumNights)
	}
	if l.HostName != "Ana" || l.Neighbourhood != "Downtown" || l.PropertyType != "" {
		t.Fatalf("unexpected text fields: %+v", l)
	}

	b, _ := json.Marshal(l)
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m["price"] != 0.0 || m["review_scores_rating"] != 0.0 || m["reviews_per_month"] != 0.0 || m["minimum_nights"] != 3.0 {
		t.Fatalf("unexpected JSON: %s", b)
	}
	if v, ok := m["license"]; !ok || v != nil {
		t.Fatalf("expected null license, got %v", v)
	}
}

func TestListings_OrderedAndIdempotent(t *testing.T) {
	repo := &fakeRepo{rows: []domain.ListingRow{
		{ListingID: 3, Price: pfloat(80)},
		{ListingID: 1, Price: pfloat(120)},
		{ListingID: 2},
	}}
	q := app.NewQueryService(repo, nil, false)

	first, err := q.Listings(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	second, _ := q.Listings(context.Background())

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("expected identical output\n%s\n%s", a, b)
	}
	for i, want := range []int64{1, 2, 3} {
		if first[i].ListingID != want {
			t.Fatalf("position %d: expected listing %d, got %d", i, want, first[i].ListingID)
		}
	}
}

func TestListings_EmptyIsArray(t *testing.T) {
	q := app.NewQueryService(&fakeRepo{}, nil, false)
	out, err := q.Listings(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	b, _ := json.Marshal(out)
	if string(b) != "[]" {
		t.Fatalf("expected [], got %s", b)
	}
}

func TestListings_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("connection refused")
	q := app.NewQueryService(&fakeRepo{err: boom}, nil, false)
	if _, err := q.Listings(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestPriceAvailability_CollapsesAndSorts(t *testing.T) {
	repo := &fakeRepo{pa: []domain.PriceAvailability{
		{Neighbourhood: "alpha", Date: day(2024, 1, 1), AvgPrice: 50, AvailableListings: 1},
		{Neighbourhood: "Downtown", Date: day(2024, 1, 2), AvgPrice: 90, AvailableListings: 3},
		{Neighbourhood: "Downtown", Date: day(2024, 1, 1), AvgPrice: 100, AvailableListings: 1},
		{Neighbourhood: "Downtown", Date: day(2024, 1, 1), AvgPrice: 120, AvailableListings: 1},
	}}
	q := app.NewQueryService(repo, nil, false)

	out, err := q.PriceAvailability(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(repo.filters) != 1 || repo.filters[0] != domain.DefaultAvailabilityFilter {
		t.Fatalf("expected default filter, got %+v", repo.filters)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 records, got %+v", out)
	}
	got := out[0]
	if got.Neighbourhood != "Downtown" || got.Date != day(2024, 1, 1) || got.AvgPrice != 110 || got.AvailableListings != 2 {
		t.Fatalf("unexpected first record: %+v", got)
	}
	if out[1].Date != day(2024, 1, 2) || out[2].Neighbourhood != "alpha" {
		t.Fatalf("unexpected order: %+v", out)
	}
}

func TestPriceAvailability_CityRollup(t *testing.T) {
	repo := &fakeRepo{pa: []domain.PriceAvailability{
		{Neighbourhood: "Downtown", Date: day(2024, 1, 1), AvgPrice: 100, AvailableListings: 1},
		{Neighbourhood: "Navy Yard", Date: day(2024, 1, 1), AvgPrice: 200, AvailableListings: 3},
		{Neighbourhood: "", Date: day(2024, 1, 1), AvgPrice: 999, AvailableListings: 9},
	}}
	q := app.NewQueryService(repo, nil, true)

	out, err := q.PriceAvailability(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 records, got %+v", out)
	}
	city := out[0]
	if city.Neighbourhood != "" || city.AvailableListings != 4 || city.AvgPrice != 175 {
		t.Fatalf("unexpected rollup: %+v", city)
	}
}

func TestScrapeDates(t *testing.T) {
	q := app.NewQueryService(&fakeRepo{}, nil, false)
	if _, err := q.ScrapeDates(context.Background()); !errors.Is(err, domain.ErrNoMetadata) {
		t.Fatalf("expected ErrNoMetadata, got %v", err)
	}

	meta := &fakeMeta{rows: []domain.Metadata{{"scrape_date": "2024-03-21"}}}
	q = app.NewQueryService(&fakeRepo{}, meta, false)
	out, err := q.ScrapeDates(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 1 || out[0]["scrape_date"] != "2024-03-21" {
		t.Fatalf("unexpected rows: %+v", out)
	}
}

func ptr[T any](v T) *T         { return &v }
func pfloat(f float64) *float64 { return &f }

func day(y int, m time.Month, d int) domain.Date {
	return domain.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
