package handler // handler package contains the venue pages and mutations

import (
	"context"  // context carries request deadlines into the service
	"log/slog" // slog logs failures
	"net/http" // http provides status code constants

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/iliyamo/fyyur/internal/dto"     // dto holds the request forms
	"github.com/iliyamo/fyyur/internal/listing" // listing holds the read views
	"github.com/iliyamo/fyyur/internal/model"   // model holds the stored entities
)

// VenueService is the venue use case surface the handler needs.
type VenueService interface {
	ListByArea(ctx context.Context) ([]listing.Area, error)
	Search(ctx context.Context, term string) (listing.SearchResult, error)
	Detail(ctx context.Context, id uint64) (listing.VenueDetail, error)
	Get(ctx context.Context, id uint64) (*model.Venue, error)
	Create(ctx context.Context, form dto.VenueForm) (*model.Venue, error)
	Update(ctx context.Context, id uint64, form dto.VenueForm) (*model.Venue, error)
	Delete(ctx context.Context, id uint64) error
}

// VenueHandler serves the /venues routes.
type VenueHandler struct {
	svc VenueService
	log *slog.Logger
}

// NewVenueHandler constructs a VenueHandler and panics if svc is nil.
func NewVenueHandler(svc VenueService, log *slog.Logger) *VenueHandler {
	if svc == nil {
		panic("nil service passed to NewVenueHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &VenueHandler{svc: svc, log: log}
}

// List handles GET /venues and returns venues grouped by city and state.
func (h *VenueHandler) List(c echo.Context) error {
	areas, err := h.svc.ListByArea(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err, "")
	}
	return c.JSON(http.StatusOK, echo.Map{"areas": areas})
}

// Search handles POST /venues/search.
func (h *VenueHandler) Search(c echo.Context) error {
	var form dto.SearchForm
	if err := bind(c, &form); err != nil {
		return fail(c, h.log, err, "")
	}
	res, err := h.svc.Search(c.Request().Context(), form.SearchTerm)
	if err != nil {
		return fail(c, h.log, err, "")
	}
	return c.JSON(http.StatusOK, echo.Map{"search_term": form.SearchTerm, "results": res})
}

// Show handles GET /venues/:id and returns the venue page.
func (h *VenueHandler) Show(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err, "")
	}
	d, err := h.svc.Detail(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.log, err, "")
	}
	return c.JSON(http.StatusOK, d)
}

// EditForm handles GET /venues/:id/edit and returns the stored record.
func (h *VenueHandler) EditForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err, "")
	}
	v, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.log, err, "")
	}
	return c.JSON(http.StatusOK, echo.Map{"venue": v})
}

// Create handles POST /venues/create.
func (h *VenueHandler) Create(c echo.Context) error {
	var form dto.VenueForm
	if err := bind(c, &form); err != nil {
		return fail(c, h.log, err, notListedFlash("Venue", ""))
	}
	v, err := h.svc.Create(c.Request().Context(), form)
	if err != nil {
		return fail(c, h.log, err, notListedFlash("Venue", form.Name))
	}
	return c.JSON(http.StatusCreated, echo.Map{"flash": listedFlash("Venue", v.Name), "venue": v})
}

// Update handles POST /venues/:id/edit and replaces the whole record.
func (h *VenueHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err, notEditedFlash("Venue", c.Param("id")))
	}
	var form dto.VenueForm
	if err := bind(c, &form); err != nil {
		return fail(c, h.log, err, notEditedFlash("Venue", c.Param("id")))
	}
	v, err := h.svc.Update(c.Request().Context(), id, form)
	if err != nil {
		return fail(c, h.log, err, notEditedFlash("Venue", c.Param("id")))
	}
	return c.JSON(http.StatusOK, echo.Map{"flash": editedFlash("Venue"), "venue": v})
}

// Delete handles DELETE /venues/:id and the legacy GET /venues/delete/:id.
// The venue's shows are removed with it.
func (h *VenueHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err, notDeletedFlash("Venue", c.Param("id")))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, h.log, err, notDeletedFlash("Venue", c.Param("id")))
	}
	return c.JSON(http.StatusOK, echo.Map{"flash": deletedFlash("Venue")})
}
