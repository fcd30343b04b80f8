package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"airbnb_hub/internal/adapters/observability"
	"airbnb_hub/internal/domain"
)

const storeLabel = "sql"

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	i := int(ni.Int64)
	return &i
}
func f64Ptr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}
func boolPtr(nb sql.NullBool) *bool {
	if !nb.Valid {
		return nil
	}
	b := nb.Bool
	return &b
}
func datePtr(nt sql.NullTime) *domain.Date {
	if !nt.Valid {
		return nil
	}
	d := domain.NewDate(nt.Time)
	return &d
}

type Repo struct {
	db       *sql.DB
	ph       placeholder
	useViews bool
}

type Option func(*Repo)

// WithDriver selects placeholder syntax for the database/sql driver name the
// *sql.DB was opened with. Defaults to postgres.
func WithDriver(driver string) Option {
	return func(r *Repo) { r.ph = placeholderFor(driver) }
}

// WithViews reads the pre-built map_listings and price_availability views
// instead of composing the joins.
func WithViews(on bool) Option {
	return func(r *Repo) { r.useViews = on }
}

func New(db *sql.DB, opts ...Option) *Repo {
	r := &Repo{db: db, ph: dollar}
	for _, o := range opts {
		o(r)
	}
	return r
}

// withConn holds one pooled connection for the duration of fn and returns it
// to the pool on every path.
func (r *Repo) withConn(ctx context.Context, query string, fn func(*sql.Conn) error) (err error) {
	start := time.Now()
	defer func() {
		observability.ObserveQuery(storeLabel, query, err, time.Since(start))
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("query", query).Str("err_type", observability.LabelErr(err)).Msg("sql query failed")
		}
	}()

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()
	return fn(conn)
}

func (r *Repo) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

func (r *Repo) ListListings(ctx context.Context) ([]domain.ListingRow, error) {
	query := listListingsSQL
	if r.useViews {
		query = listListingsViewSQL
	}

	var out []domain.ListingRow
	err := r.withConn(ctx, "listings", func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, rebind(r.ph, query))
		if err != nil {
			return fmt.Errorf("query listings: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			lr, err := scanListing(rows)
			if err != nil {
				return fmt.Errorf("scan listing: %w", err)
			}
			out = append(out, lr)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func scanListing(rows *sql.Rows) (domain.ListingRow, error) {
	var lr domain.ListingRow
	var (
		lat, lon                       sql.NullFloat64
		hover, url, propType, roomType sql.NullString
		price, rating, perMonth, minN  sql.NullFloat64
		accommodates                   sql.NullInt64
		nRev, nLTM, nL30D              sql.NullInt64
		firstRev, lastRev              sql.NullTime
		hostID, hostCount, hostTotal   sql.NullInt64
		hostName, license, hood        sql.NullString
		verified                       sql.NullBool
	)
	if err := rows.Scan(
		&lr.ListingID,
		&lat, &lon,
		&hover, &url,
		&price,
		&propType, &roomType,
		&accommodates,
		&nRev, &nLTM, &nL30D,
		&firstRev, &lastRev,
		&rating, &perMonth,
		&hostID, &hostName, &verified, &hostCount, &hostTotal,
		&license,
		&hood,
		&minN,
	); err != nil {
		return domain.ListingRow{}, err
	}

	lr.Latitude = lat.Float64
	lr.Longitude = lon.Float64
	lr.Accommodates = int(accommodates.Int64)
	lr.HostID = hostID.Int64

	lr.HoverDescription = strPtr(hover)
	lr.ListingURL = strPtr(url)
	lr.Price = f64Ptr(price)
	lr.PropertyType = strPtr(propType)
	lr.RoomType = strPtr(roomType)
	lr.NumberOfReviews = intPtr(nRev)
	lr.NumberOfReviewsLTM = intPtr(nLTM)
	lr.NumberOfReviewsL30D = intPtr(nL30D)
	lr.FirstReview = datePtr(firstRev)
	lr.LastReview = datePtr(lastRev)
	lr.ReviewScoresRating = f64Ptr(rating)
	lr.ReviewsPerMonth = f64Ptr(perMonth)
	lr.HostName = strPtr(hostName)
	lr.HostIdentityVerified = boolPtr(verified)
	lr.HostListingsCount = intPtr(hostCount)
	lr.HostTotalListingsCount = intPtr(hostTotal)
	lr.License = strPtr(license)
	lr.Neighbourhood = strPtr(hood)
	lr.MinimumNights = f64Ptr(minN)
	return lr, nil
}

func (r *Repo) PriceAvailability(ctx context.Context, f domain.AvailabilityFilter) ([]domain.PriceAvailability, error) {
	query, args := priceAvailabilitySQL, []any{f.Available, f.MaxPrice}
	if r.useViews {
		query, args = priceAvailabilityViewSQL, nil
	}

	var out []domain.PriceAvailability
	err := r.withConn(ctx, "price_availability", func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, rebind(r.ph, query), args...)
		if err != nil {
			return fmt.Errorf("query price availability: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				hood  sql.NullString
				date  sql.NullTime
				avg   sql.NullFloat64
				count sql.NullInt64
			)
			if err := rows.Scan(&hood, &date, &avg, &count); err != nil {
				return fmt.Errorf("scan price availability: %w", err)
			}
			if !date.Valid {
				continue
			}
			out = append(out, domain.PriceAvailability{
				Neighbourhood:     hood.String,
				Date:              domain.NewDate(date.Time),
				AvgPrice:          avg.Float64,
				AvailableListings: count.Int64,
			})
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ScrapeDates returns the metadata table as-is, one map per row keyed by
// column name. Text comes back from some drivers as []byte and is returned
// as a string.
func (r *Repo) ScrapeDates(ctx context.Context) ([]domain.Metadata, error) {
	var out []domain.Metadata
	err := r.withConn(ctx, "scrape_date", func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, scrapeDatesSQL)
		if err != nil {
			return fmt.Errorf("query metadata: %w", err)
		}
		defer rows.Close()

		cols, err := rows.Columns()
		if err != nil {
			return err
		}
		for rows.Next() {
			vals := make([]any, len(cols))
			ptrs := make([]any, len(cols))
			for i := range vals {
				ptrs[i] = &vals[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return fmt.Errorf("scan metadata: %w", err)
			}
			m := make(domain.Metadata, len(cols))
			for i, c := range cols {
				if b, ok := vals[i].([]byte); ok {
					m[c] = string(b)
					continue
				}
				m[c] = vals[i]
			}
			out = append(out, m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
