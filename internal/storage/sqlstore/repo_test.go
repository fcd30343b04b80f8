package sqlstore_test

import (
	"context"
	"database/sql"
	"reflect"
	"testing"
	"time"

	"airbnb_hub/internal/domain"
	"airbnb_hub/internal/storage/ormstore"
	"airbnb_hub/internal/storage/sqlstore"
	"airbnb_hub/internal/storage/storetest"
)

func seeded(t *testing.T) (*sql.DB, *ormstore.Repo) {
	t.Helper()
	gdb := storetest.OpenSQLite(t)
	storetest.Seed(t, gdb)
	db, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	return db, ormstore.New(gdb)
}

func TestRepo_ListListings_NullHandling(t *testing.T) {
	db, _ := seeded(t)
	repo := sqlstore.New(db, sqlstore.WithDriver("sqlite3"))

	rows, err := repo.ListListings(context.Background())
	if err != nil {
		t.Fatalf("ListListings: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	np := rows[1]
	if np.ListingID != storetest.NullPriceListing {
		t.Fatalf("expected listing %d second, got %d", storetest.NullPriceListing, np.ListingID)
	}
	if np.Price != nil || np.NumberOfReviews != nil || np.ReviewScoresRating != nil {
		t.Fatalf("expected NULLs for missing review stats and price: %+v", np)
	}
	if np.MinimumNights == nil || *np.MinimumNights != 3 {
		t.Fatalf("expected minimum_nights 3 from listings, got %v", np.MinimumNights)
	}

	bare := rows[2]
	if bare.ListingURL != nil || bare.RoomType != nil {
		t.Fatalf("expected NULL categorical columns: %+v", bare)
	}
	if bare.HostName == nil || *bare.HostName != "Bob" {
		t.Fatalf("unexpected host: %+v", bare.HostName)
	}
}

func TestRepo_MatchesORMStore(t *testing.T) {
	db, orm := seeded(t)
	repo := sqlstore.New(db, sqlstore.WithDriver("sqlite3"))
	ctx := context.Background()

	fromSQL, err := repo.ListListings(ctx)
	if err != nil {
		t.Fatalf("sql ListListings: %v", err)
	}
	fromORM, err := orm.ListListings(ctx)
	if err != nil {
		t.Fatalf("orm ListListings: %v", err)
	}
	if !reflect.DeepEqual(fromSQL, fromORM) {
		t.Fatalf("stores disagree\nsql: %+v\norm: %+v", fromSQL, fromORM)
	}

	paSQL, err := repo.PriceAvailability(ctx, domain.DefaultAvailabilityFilter)
	if err != nil {
		t.Fatalf("sql PriceAvailability: %v", err)
	}
	paORM, err := orm.PriceAvailability(ctx, domain.DefaultAvailabilityFilter)
	if err != nil {
		t.Fatalf("orm PriceAvailability: %v", err)
	}
	if !reflect.DeepEqual(paSQL, paORM) {
		t.Fatalf("aggregations disagree\nsql: %+v\norm: %+v", paSQL, paORM)
	}
}

func TestRepo_PriceAvailability(t *testing.T) {
	db, _ := seeded(t)
	repo := sqlstore.New(db, sqlstore.WithDriver("sqlite3"))

	out, err := repo.PriceAvailability(context.Background(), domain.DefaultAvailabilityFilter)
	if err != nil {
		t.Fatalf("PriceAvailability: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 groups, got %+v", out)
	}
	first := out[0]
	if first.Neighbourhood != "Downtown" || first.Date.String() != "2024-01-01" || first.AvgPrice != 110 || first.AvailableListings != 2 {
		t.Fatalf("unexpected first group: %+v", first)
	}
	seen := map[string]bool{}
	for _, r := range out {
		k := r.Neighbourhood + "|" + r.Date.String()
		if seen[k] {
			t.Fatalf("duplicate group %s", k)
		}
		seen[k] = true
		if r.Date.String() == "2024-01-02" {
			t.Fatalf("unavailable or overpriced rows leaked into %+v", r)
		}
	}
}

func TestRepo_ScrapeDates_PassThrough(t *testing.T) {
	db, _ := seeded(t)
	repo := sqlstore.New(db, sqlstore.WithDriver("sqlite3"))

	rows, err := repo.ScrapeDates(context.Background())
	if err != nil {
		t.Fatalf("ScrapeDates: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 metadata row, got %d", len(rows))
	}
	v, ok := rows[0]["scrape_date"]
	if !ok {
		t.Fatalf("missing scrape_date column: %+v", rows[0])
	}
	ts, ok := v.(time.Time)
	if !ok || ts.Format("2006-01-02") != "2024-03-21" {
		t.Fatalf("unexpected scrape_date %T %v", v, v)
	}
}

func TestRepo_ClosedDB(t *testing.T) {
	db, _ := seeded(t)
	repo := sqlstore.New(db, sqlstore.WithDriver("sqlite3"))
	_ = db.Close()

	if _, err := repo.ListListings(context.Background()); err == nil {
		t.Fatalf("expected error from closed database")
	}
	if err := repo.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error from closed database")
	}
}
