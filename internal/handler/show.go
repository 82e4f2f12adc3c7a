package handler // show listing and mutations

import (
	"context"  // context carries request deadlines into the service
	"log/slog" // slog logs failures
	"net/http" // http provides status code constants

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/iliyamo/fyyur/internal/dto"     // dto holds the request forms
	"github.com/iliyamo/fyyur/internal/listing" // listing holds the read views
	"github.com/iliyamo/fyyur/internal/model"   // model holds the stored entities
)

// ShowService is the show use case surface the handler needs.
type ShowService interface {
	List(ctx context.Context) ([]listing.ShowListing, error)
	Create(ctx context.Context, form dto.ShowForm) (*model.Show, error)
	Delete(ctx context.Context, id uint64) error
}

// ShowHandler serves the /shows routes.
type ShowHandler struct {
	svc ShowService
	log *slog.Logger
}

// NewShowHandler constructs a ShowHandler and panics if svc is nil.
func NewShowHandler(svc ShowService, log *slog.Logger) *ShowHandler {
	if svc == nil {
		panic("nil service passed to NewShowHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ShowHandler{svc: svc, log: log}
}

// List handles GET /shows.
func (h *ShowHandler) List(c echo.Context) error {
	shows, err := h.svc.List(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err, "")
	}
	return c.JSON(http.StatusOK, echo.Map{"shows": shows})
}

// Create handles POST /shows/create. A missing venue or artist is a
// constraint failure and nothing is stored.
func (h *ShowHandler) Create(c echo.Context) error {
	var form dto.ShowForm
	if err := bind(c, &form); err != nil {
		return fail(c, h.log, err, notListedFlash("Show", ""))
	}
	show, err := h.svc.Create(c.Request().Context(), form)
	if err != nil {
		return fail(c, h.log, err, notListedFlash("Show", ""))
	}
	return c.JSON(http.StatusCreated, echo.Map{"flash": "Show was successfully listed!", "show": show})
}

// Delete handles DELETE /shows/:id.
func (h *ShowHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err, notDeletedFlash("Show", c.Param("id")))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, h.log, err, notDeletedFlash("Show", c.Param("id")))
	}
	return c.JSON(http.StatusOK, echo.Map{"flash": deletedFlash("Show")})
}
