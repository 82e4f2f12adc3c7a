package router // package router defines how HTTP routes are registered for the service

import (
	"github.com/labstack/echo/v4"                             // Echo web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Prometheus scrape handler

	"github.com/iliyamo/fyyur/internal/handler" // handlers for each resource
)

// RegisterRoutes registers the operational endpoints: liveness, readiness
// and the Prometheus scrape target.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(db))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterVenues registers the venue pages. Mutations go through limit.
func RegisterVenues(e *echo.Echo, h *handler.VenueHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/venues")
	g.GET("", h.List)
	g.POST("/search", h.Search)
	g.GET("/:id", h.Show)
	g.GET("/:id/edit", h.EditForm)

	g.POST("/create", h.Create, limit)
	g.POST("/:id/edit", h.Update, limit)
	g.DELETE("/:id", h.Delete, limit)
	g.GET("/delete/:id", h.Delete, limit) // legacy link from the venue page
}

// RegisterArtists registers the artist pages. Mutations go through limit.
func RegisterArtists(e *echo.Echo, h *handler.ArtistHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/artists")
	g.GET("", h.List)
	g.POST("/search", h.Search)
	g.GET("/:id", h.Show)
	g.GET("/:id/edit", h.EditForm)

	g.POST("/create", h.Create, limit)
	g.POST("/:id/edit", h.Update, limit)
	g.DELETE("/:id", h.Delete, limit)
	g.GET("/delete/:id", h.Delete, limit) // legacy link from the artist page
}

// RegisterShows registers the show listing and its mutations.
func RegisterShows(e *echo.Echo, h *handler.ShowHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/shows")
	g.GET("", h.List)
	g.POST("/create", h.Create, limit)
	g.DELETE("/:id", h.Delete, limit)
}
