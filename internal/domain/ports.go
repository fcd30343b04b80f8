package domain

import (
	"context"
	"errors"
)

var ErrNoMetadata = errors.New("metadata source not configured")

// ListingRepository is the read side both backends implement.
type ListingRepository interface {
	ListListings(ctx context.Context) ([]ListingRow, error)
	PriceAvailability(ctx context.Context, f AvailabilityFilter) ([]PriceAvailability, error)
	Ping(ctx context.Context) error
}

// MetadataRepository returns the metadata table verbatim. Only the raw-SQL
// backend provides one.
type MetadataRepository interface {
	ScrapeDates(ctx context.Context) ([]Metadata, error)
}
