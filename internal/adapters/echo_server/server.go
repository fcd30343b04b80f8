// Package echoserver exposes the read API of the ORM backend on echo.
package echoserver

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"airbnb_hub/internal/adapters/web"
	"airbnb_hub/internal/app"
)

type Server struct{ e *echo.Echo }

// New builds the echo instance with the shared middleware chain. rps <= 0
// disables rate limiting.
func New(timeout time.Duration, rps int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(Metrics)
	e.Use(Logger(log.Logger))
	e.Use(middleware.Recover())
	if rps > 0 {
		e.Use(RateLimit(rps))
	}
	e.Use(middleware.ContextTimeout(timeout))

	return &Server{e: e}
}

func (s *Server) Handler() http.Handler { return s.e }

// Echo exposes the instance for Start/Shutdown.
func (s *Server) Echo() *echo.Echo { return s.e }

// Mount attaches an extra GET handler (e.g., /metrics).
func (s *Server) Mount(path string, h http.Handler) {
	s.e.GET(path, echo.WrapHandler(h))
}

// Register wires every route. staticDir may be empty.
func (s *Server) Register(q *app.QueryService, staticDir string) {
	pages := NewPageController(q)
	pages.Register(s.e)
	if staticDir != "" {
		s.e.Static("/static", staticDir)
	}

	NewListingController(q).Register(s.e.Group("/api"))
	s.e.GET("/", echo.WrapHandler(web.Index()))
}
