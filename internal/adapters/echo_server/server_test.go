package echoserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoserver "airbnb_hub/internal/adapters/echo_server"
	"airbnb_hub/internal/app"
	"airbnb_hub/internal/domain"
)

type fakeRepo struct {
	rows []domain.ListingRow
	pa   []domain.PriceAvailability
	err  error
}

func (f *fakeRepo) ListListings(ctx context.Context) ([]domain.ListingRow, error) {
	return f.rows, f.err
}

func (f *fakeRepo) PriceAvailability(ctx context.Context, _ domain.AvailabilityFilter) ([]domain.PriceAvailability, error) {
	return f.pa, f.err
}

func (f *fakeRepo) Ping(ctx context.Context) error { return f.err }

func newServer(repo *fakeRepo, rps int, staticDir string) *echoserver.Server {
	s := echoserver.New(5*time.Second, rps)
	s.Register(app.NewQueryService(repo, nil, false), staticDir)
	return s
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestListings(t *testing.T) {
	nb := "Capitol Hill"
	repo := &fakeRepo{rows: []domain.ListingRow{
		{ListingID: 9, HostID: 3, Neighbourhood: &nb},
		{ListingID: 4, HostID: 3},
	}}
	rr := get(t, newServer(repo, 0, "").Handler(), "/api/listings")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	var got []domain.MapListing
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, int64(4), got[0].ListingID)
	assert.Equal(t, "", got[0].Neighbourhood)
	assert.Equal(t, "Capitol Hill", got[1].Neighbourhood)
}

func TestPriceAvailability(t *testing.T) {
	d := domain.NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	repo := &fakeRepo{pa: []domain.PriceAvailability{
		{Neighbourhood: "Downtown", Date: d, AvgPrice: 100, AvailableListings: 1},
		{Neighbourhood: "Downtown", Date: d, AvgPrice: 120, AvailableListings: 1},
	}}
	rr := get(t, newServer(repo, 0, "").Handler(), "/api/price_availability")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"neighbourhood":"Downtown","date":"2024-01-01","avg_price":110,"available_listings":2}]`, rr.Body.String())
}

func TestEmptyArrays(t *testing.T) {
	h := newServer(&fakeRepo{}, 0, "").Handler()
	for _, p := range []string{"/api/listings", "/api/price_availability"} {
		rr := get(t, h, p)
		assert.Equal(t, http.StatusOK, rr.Code, p)
		assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()), p)
	}
}

func TestStoreFailure(t *testing.T) {
	h := newServer(&fakeRepo{err: errors.New("dial tcp: refused")}, 0, "").Handler()

	for _, p := range []string{"/api/listings", "/api/price_availability", "/charts/price_availability"} {
		rr := get(t, h, p)
		assert.Equal(t, http.StatusInternalServerError, rr.Code, p)
		assert.NotContains(t, rr.Body.String(), "refused", p)
	}
	assert.Equal(t, http.StatusServiceUnavailable, get(t, h, "/healthz").Code)
}

func TestNoScrapeDateRoute(t *testing.T) {
	rr := get(t, newServer(&fakeRepo{}, 0, "").Handler(), "/api/scrape_date")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("//js"), 0o644))
	h := newServer(&fakeRepo{}, 0, dir).Handler()

	rr := get(t, h, "/")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/api/listings")

	rr = get(t, h, "/static/app.js")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "//js", rr.Body.String())

	rr = get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())

	rr = get(t, h, "/charts/price_availability")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
}

func TestRateLimit(t *testing.T) {
	h := newServer(&fakeRepo{}, 1, "").Handler()
	assert.Equal(t, http.StatusOK, get(t, h, "/healthz").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(t, h, "/healthz").Code)
}

func TestMount(t *testing.T) {
	s := newServer(&fakeRepo{}, 0, "")
	s.Mount("/metrics", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	}))
	assert.Equal(t, "# metrics", get(t, s.Handler(), "/metrics").Body.String())
}
