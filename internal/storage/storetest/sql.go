package storetest

import (
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
)

// SeedSQL is the Seed fixture as plain SQL, valid for Postgres and MySQL.
const SeedSQL = `
INSERT INTO neighbourhoods (neighbourhood_id, neighbourhood) VALUES (1, 'Downtown'), (2, 'Navy Yard');

INSERT INTO hosts (host_id, host_url, host_name, host_since, host_is_superhost, host_thumbnail_url, host_picture_url,
  host_listings_count, host_total_listings_count, host_verifications, host_has_profile_pic, host_identity_verified)
VALUES
  (11, 'https://example.test/users/11', 'Ana', '2015-06-01', TRUE, 't11', 'p11', 2, 3, '[''email'', ''phone'']', TRUE, TRUE),
  (12, 'https://example.test/users/12', 'Bob', '2019-02-14', FALSE, 't12', 'p12', 1, 1, '[''email'']', FALSE, FALSE);

INSERT INTO listings (listing_id, host_id, neighbourhood_id, latitude, longitude, accommodates, price, minimum_nights)
VALUES
  (100, 11, 1, 38.9, -77.03, 4, 150, 2),
  (101, 11, 1, 38.91, -77.02, 2, NULL, 3),
  (102, 12, 2, 38.87, -77.0, 1, 90, NULL);

INSERT INTO listing_categorical (listing_id, listing_name, hover_description, listing_url, picture_url, property_type, room_type, amenities, license)
VALUES
  (100, 'Loft', 'Sunny loft', 'https://example.test/rooms/100', 'pic100', 'Entire loft', 'Entire home/apt', '[]', 'L-100'),
  (101, 'Room', NULL, 'https://example.test/rooms/101', 'pic101', 'Private room in home', 'Private room', '[]', NULL);

INSERT INTO listing_reviews (listing_id, number_of_reviews, number_of_reviews_ltm, number_of_reviews_l30d, first_review, last_review, review_scores_rating, reviews_per_month)
VALUES
  (100, 42, 10, 1, '2020-01-05', '2024-02-20', 4.8, 0.9),
  (102, 0, 0, 0, NULL, NULL, NULL, NULL);

INSERT INTO min_max_nights (listing_id, minimum_nights, maximum_nights, minimum_minimum_nights, maximum_minimum_nights,
  minimum_maximum_nights, maximum_maximum_nights, minimum_nights_avg_ntm, maximum_nights_avg_ntm)
VALUES (101, 7, 30, 0, 0, 0, 0, 0, 0);

INSERT INTO calendar (listing_id, date, available, price, minimum_nights, maximum_nights)
VALUES
  (100, '2024-01-01', TRUE, 100, 2, 30),
  (101, '2024-01-01', TRUE, 120, 3, 30),
  (100, '2024-01-02', TRUE, 600, 2, 30),
  (101, '2024-01-02', FALSE, 80, 3, 30),
  (101, '2024-01-03', TRUE, 500, 3, 30),
  (102, '2024-01-01', TRUE, 90, 1, 7);

INSERT INTO metadata (scrape_date) VALUES ('2024-03-21');
`

// MigrationsDir returns <root>/<dialect>, where root is MIGRATIONS_DIR when
// set and the repository's migrations directory otherwise.
func MigrationsDir(dialect string) string {
	root := os.Getenv("MIGRATIONS_DIR")
	if root == "" {
		_, file, _, _ := runtime.Caller(0)
		root = filepath.Join(filepath.Dir(file), "..", "..", "..", "migrations")
	}
	return filepath.Join(root, dialect)
}

// ExecScript runs a multi-statement script one statement at a time so it
// works without driver multi-statement support. Full-line comments are
// dropped; statements are split on ';'.
func ExecScript(t testing.TB, db *sql.DB, script string) {
	t.Helper()
	var kept []string
	for _, line := range strings.Split(script, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}
	for _, stmt := range strings.Split(strings.Join(kept, "\n"), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", firstLine(stmt), err)
		}
	}
}

// ApplyMigrations runs every .sql file in dir in lexical order.
func ApplyMigrations(t testing.TB, db *sql.DB, dir string) {
	t.Helper()
	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("migrations dir %s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		ExecScript(t, db, string(b))
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
