package handler // declare the package name; contains HTTP handlers

import (
	"context"  // context bounds the database ping
	"net/http" // net/http provides status codes and response helpers
	"time"     // time sets the ping deadline

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health is a liveness endpoint used by load balancers. It returns a plain
// text "ok" with status 200 as long as the process serves requests.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok") // plain text body
}

// Ready returns a readiness handler that pings the database. A failed ping
// answers 503 so the instance is taken out of rotation.
func Ready(db Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": kindConnection}) // database unreachable
		}
		return c.String(http.StatusOK, "ready")
	}
}
