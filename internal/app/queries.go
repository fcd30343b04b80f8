package app

import (
	"context"

	"airbnb_hub/internal/domain"
)

// QueryService holds the read paths shared by both backends. It keeps no
// state between calls; every call runs its query against the store.
type QueryService struct {
	repo   domain.ListingRepository
	meta   domain.MetadataRepository
	rollup bool
}

// NewQueryService wires the read paths. meta may be nil when the backend has
// no metadata table; rollup adds the city-wide price/availability series.
func NewQueryService(r domain.ListingRepository, meta domain.MetadataRepository, rollup bool) *QueryService {
	return &QueryService{repo: r, meta: meta, rollup: rollup}
}

func (s *QueryService) Listings(ctx context.Context) ([]domain.MapListing, error) {
	rows, err := s.repo.ListListings(ctx)
	if err != nil {
		return nil, err
	}
	return mapListings(rows), nil
}

func (s *QueryService) PriceAvailability(ctx context.Context) ([]domain.PriceAvailability, error) {
	rows, err := s.repo.PriceAvailability(ctx, domain.DefaultAvailabilityFilter)
	if err != nil {
		return nil, err
	}
	out := collapsePriceAvailability(rows)
	if s.rollup {
		out = collapsePriceAvailability(append(withoutCity(out), cityRollup(out)...))
	}
	return out, nil
}

func (s *QueryService) ScrapeDates(ctx context.Context) ([]domain.Metadata, error) {
	if s.meta == nil {
		return nil, domain.ErrNoMetadata
	}
	rows, err := s.meta.ScrapeDates(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.Metadata{}
	}
	return rows, nil
}

// HasMetadata reports whether ScrapeDates can be served.
func (s *QueryService) HasMetadata() bool { return s.meta != nil }

func (s *QueryService) Ping(ctx context.Context) error { return s.repo.Ping(ctx) }
