package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/dto"
	"github.com/iliyamo/fyyur/internal/listing"
	"github.com/iliyamo/fyyur/internal/model"
)

type mockVenueService struct {
	listFn   func(ctx context.Context) ([]listing.Area, error)
	searchFn func(ctx context.Context, term string) (listing.SearchResult, error)
	detailFn func(ctx context.Context, id uint64) (listing.VenueDetail, error)
	getFn    func(ctx context.Context, id uint64) (*model.Venue, error)
	createFn func(ctx context.Context, form dto.VenueForm) (*model.Venue, error)
	updateFn func(ctx context.Context, id uint64, form dto.VenueForm) (*model.Venue, error)
	deleteFn func(ctx context.Context, id uint64) error
}

func (m *mockVenueService) ListByArea(ctx context.Context) ([]listing.Area, error) {
	return m.listFn(ctx)
}

func (m *mockVenueService) Search(ctx context.Context, term string) (listing.SearchResult, error) {
	return m.searchFn(ctx, term)
}

func (m *mockVenueService) Detail(ctx context.Context, id uint64) (listing.VenueDetail, error) {
	return m.detailFn(ctx, id)
}

func (m *mockVenueService) Get(ctx context.Context, id uint64) (*model.Venue, error) {
	return m.getFn(ctx, id)
}

func (m *mockVenueService) Create(ctx context.Context, form dto.VenueForm) (*model.Venue, error) {
	return m.createFn(ctx, form)
}

func (m *mockVenueService) Update(ctx context.Context, id uint64, form dto.VenueForm) (*model.Venue, error) {
	return m.updateFn(ctx, id, form)
}

func (m *mockVenueService) Delete(ctx context.Context, id uint64) error {
	return m.deleteFn(ctx, id)
}

type mockArtistService struct {
	listFn   func(ctx context.Context) ([]listing.ArtistSummary, error)
	searchFn func(ctx context.Context, term string) (listing.SearchResult, error)
	detailFn func(ctx context.Context, id uint64) (listing.ArtistDetail, error)
	getFn    func(ctx context.Context, id uint64) (*model.Artist, error)
	createFn func(ctx context.Context, form dto.ArtistForm) (*model.Artist, error)
	updateFn func(ctx context.Context, id uint64, form dto.ArtistForm) (*model.Artist, error)
	deleteFn func(ctx context.Context, id uint64) error
}

func (m *mockArtistService) List(ctx context.Context) ([]listing.ArtistSummary, error) {
	return m.listFn(ctx)
}

func (m *mockArtistService) Search(ctx context.Context, term string) (listing.SearchResult, error) {
	return m.searchFn(ctx, term)
}

func (m *mockArtistService) Detail(ctx context.Context, id uint64) (listing.ArtistDetail, error) {
	return m.detailFn(ctx, id)
}

func (m *mockArtistService) Get(ctx context.Context, id uint64) (*model.Artist, error) {
	return m.getFn(ctx, id)
}

func (m *mockArtistService) Create(ctx context.Context, form dto.ArtistForm) (*model.Artist, error) {
	return m.createFn(ctx, form)
}

func (m *mockArtistService) Update(ctx context.Context, id uint64, form dto.ArtistForm) (*model.Artist, error) {
	return m.updateFn(ctx, id, form)
}

func (m *mockArtistService) Delete(ctx context.Context, id uint64) error {
	return m.deleteFn(ctx, id)
}

type mockShowService struct {
	listFn   func(ctx context.Context) ([]listing.ShowListing, error)
	createFn func(ctx context.Context, form dto.ShowForm) (*model.Show, error)
	deleteFn func(ctx context.Context, id uint64) error
}

func (m *mockShowService) List(ctx context.Context) ([]listing.ShowListing, error) {
	return m.listFn(ctx)
}

func (m *mockShowService) Create(ctx context.Context, form dto.ShowForm) (*model.Show, error) {
	return m.createFn(ctx, form)
}

func (m *mockShowService) Delete(ctx context.Context, id uint64) error {
	return m.deleteFn(ctx, id)
}

// newJSONCtx builds a context for a JSON request.
func newJSONCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// newFormCtx builds a context for an HTML form post.
func newFormCtx(target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// withID sets the :id path parameter.
func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}
