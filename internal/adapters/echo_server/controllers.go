package echoserver

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"airbnb_hub/internal/adapters/charts"
	"airbnb_hub/internal/app"
)

// ListingController serves the JSON read endpoints.
type ListingController struct{ q *app.QueryService }

func NewListingController(q *app.QueryService) *ListingController {
	return &ListingController{q: q}
}

// Register mounts the routes under g (normally /api).
func (ctrl *ListingController) Register(g *echo.Group) {
	g.GET("/listings", ctrl.Listings)
	g.GET("/price_availability", ctrl.PriceAvailability)
}

func (ctrl *ListingController) Listings(c echo.Context) error {
	out, err := ctrl.q.Listings(c.Request().Context())
	if err != nil {
		return storeFailed(c, err, "listings")
	}
	return c.JSON(http.StatusOK, out)
}

func (ctrl *ListingController) PriceAvailability(c echo.Context) error {
	out, err := ctrl.q.PriceAvailability(c.Request().Context())
	if err != nil {
		return storeFailed(c, err, "price availability")
	}
	return c.JSON(http.StatusOK, out)
}

// PageController serves the chart page and the health probe.
type PageController struct{ q *app.QueryService }

func NewPageController(q *app.QueryService) *PageController {
	return &PageController{q: q}
}

func (ctrl *PageController) Register(e *echo.Echo) {
	e.GET("/healthz", ctrl.Health)
	e.GET("/charts/price_availability", ctrl.PriceChart)
}

func (ctrl *PageController) Health(c echo.Context) error {
	if err := ctrl.q.Ping(c.Request().Context()); err != nil {
		log.Ctx(c.Request().Context()).Warn().Err(err).Msg("health check failed")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "database unreachable")
	}
	return c.String(http.StatusOK, "ok")
}

func (ctrl *PageController) PriceChart(c echo.Context) error {
	rows, err := ctrl.q.PriceAvailability(c.Request().Context())
	if err != nil {
		return storeFailed(c, err, "price availability")
	}
	var buf bytes.Buffer
	if err := charts.PriceAvailability(&buf, rows); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "chart rendering failed").SetInternal(err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func storeFailed(c echo.Context, err error, what string) error {
	log.Ctx(c.Request().Context()).Error().Err(err).Str("read", what).Msg("store read failed")
	return echo.NewHTTPError(http.StatusInternalServerError, what+" unavailable").SetInternal(err)
}
