// internal/adapters/http_server/handlers.go
package httpserver

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"airbnb_hub/internal/adapters/charts"
	"airbnb_hub/internal/adapters/web"
	"airbnb_hub/internal/app"
)

type Handlers struct {
	Q         *app.QueryService
	StaticDir string
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Method(http.MethodGet, "/", web.Index())
	if st := web.Static("/static/", h.StaticDir); st != nil {
		s.mux.Method(http.MethodGet, "/static/*", st)
	}
	s.mux.Get("/healthz", h.healthz)
	s.mux.Get("/api/listings", h.listings)
	s.mux.Get("/api/price_availability", h.priceAvailability)
	if h.Q.HasMetadata() {
		s.mux.Get("/api/scrape_date", h.scrapeDate)
	}
	s.mux.Get("/charts/price_availability", h.priceChart)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", nil, err
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body, nil
}

// writeJSON sends v with a weak ETag, or 304 when the client already has it.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body, err := calcETagAndBody(v)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("marshal response failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "response encoding failed")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("write body failed")
	}
}

func storeFailed(w http.ResponseWriter, r *http.Request, err error, what string) {
	log.Ctx(r.Context()).Error().Err(err).Str("read", what).Msg("store read failed")
	writeProblem(w, http.StatusInternalServerError, "Internal Server Error", what+" unavailable")
}

func (h *Handlers) healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.Q.Ping(r.Context()); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", "database unreachable")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) listings(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.Listings(r.Context())
	if err != nil {
		storeFailed(w, r, err, "listings")
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) priceAvailability(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.PriceAvailability(r.Context())
	if err != nil {
		storeFailed(w, r, err, "price availability")
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) scrapeDate(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ScrapeDates(r.Context())
	if err != nil {
		storeFailed(w, r, err, "scrape dates")
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) priceChart(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Q.PriceAvailability(r.Context())
	if err != nil {
		storeFailed(w, r, err, "price availability")
		return
	}
	var buf bytes.Buffer
	if err := charts.PriceAvailability(&buf, rows); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("render chart failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "chart rendering failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
