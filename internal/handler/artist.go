package handler // artist pages and mutations

import (
	"context"  // context carries request deadlines into the service
	"log/slog" // slog logs failures
	"net/http" // http provides status code constants

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/iliyamo/fyyur/internal/dto"     // dto holds the request forms
	"github.com/iliyamo/fyyur/internal/listing" // listing holds the read views
	"github.com/iliyamo/fyyur/internal/model"   // model holds the stored entities
)

// ArtistService is the artist use case surface the handler needs.
type ArtistService interface {
	List(ctx context.Context) ([]listing.ArtistSummary, error)
	Search(ctx context.Context, term string) (listing.SearchResult, error)
	Detail(ctx context.Context, id uint64) (listing.ArtistDetail, error)
	Get(ctx context.Context, id uint64) (*model.Artist, error)
	Create(ctx context.Context, form dto.ArtistForm) (*model.Artist, error)
	Update(ctx context.Context, id uint64, form dto.ArtistForm) (*model.Artist, error)
	Delete(ctx context.Context, id uint64) error
}

// ArtistHandler serves the /artists routes.
type ArtistHandler struct {
	svc ArtistService
	log *slog.Logger
}

// NewArtistHandler constructs a ArtistHandler and panics if svc is nil.
func NewArtistHandler(svc ArtistService, log *slog.Logger) *ArtistHandler {
	if svc == nil {
		panic("nil service passed to NewArtistHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ArtistHandler{svc: svc, log: log}
}

// List handles GET /artists and returns every artist by id and name.
func (h *ArtistHandler) List(c echo.Context) error {
	artists, err := h.svc.List(c.Request().Context())
	if err != nil {
		return fail(c, h.log, err, "")
	}
	return c.JSON(http.StatusOK, echo.Map{"artists": artists})
}

// Search handles POST /artists/search.
func (h *ArtistHandler) Search(c echo.Context) error {
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

// Show handles GET /artists/:id and returns the artist page.
func (h *ArtistHandler) Show(c echo.Context) error {
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

// EditForm handles GET /artists/:id/edit and returns the stored record.
func (h *ArtistHandler) EditForm(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err, "")
	}
	v, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.log, err, "")
	}
	return c.JSON(http.StatusOK, echo.Map{"artist": v})
}

// Create handles POST /artists/create.
func (h *ArtistHandler) Create(c echo.Context) error {
	var form dto.ArtistForm
	if err := bind(c, &form); err != nil {
		return fail(c, h.log, err, notListedFlash("Artist", ""))
	}
	v, err := h.svc.Create(c.Request().Context(), form)
	if err != nil {
		return fail(c, h.log, err, notListedFlash("Artist", form.Name))
	}
	return c.JSON(http.StatusCreated, echo.Map{"flash": listedFlash("Artist", v.Name), "artist": v})
}

// Update handles POST /artists/:id/edit and replaces the whole record.
func (h *ArtistHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err, notEditedFlash("Artist", c.Param("id")))
	}
	var form dto.ArtistForm
	if err := bind(c, &form); err != nil {
		return fail(c, h.log, err, notEditedFlash("Artist", c.Param("id")))
	}
	v, err := h.svc.Update(c.Request().Context(), id, form)
	if err != nil {
		return fail(c, h.log, err, notEditedFlash("Artist", c.Param("id")))
	}
	return c.JSON(http.StatusOK, echo.Map{"flash": editedFlash("Artist"), "artist": v})
}

// Delete handles DELETE /artists/:id. The artist's shows are removed with it.
func (h *ArtistHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return fail(c, h.log, err, notDeletedFlash("Artist", c.Param("id")))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, h.log, err, notDeletedFlash("Artist", c.Param("id")))
	}
	return c.JSON(http.StatusOK, echo.Map{"flash": deletedFlash("Artist")})
}
