package service

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
)

// --- Mock VenueStore ---

type mockVenueStore struct {
	createFn func(ctx context.Context, v *model.Venue) error
	getFn    func(ctx context.Context, id uint64) (*model.Venue, error)
	listFn   func(ctx context.Context) ([]model.Venue, error)
	searchFn func(ctx context.Context, term string) ([]model.Venue, error)
	updateFn func(ctx context.Context, v *model.Venue) error
	deleteFn func(ctx context.Context, id uint64) error
}

func (m *mockVenueStore) Create(ctx context.Context, v *model.Venue) error { return m.createFn(ctx, v) }
func (m *mockVenueStore) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	return m.getFn(ctx, id)
}
func (m *mockVenueStore) ListWithShows(ctx context.Context) ([]model.Venue, error) {
	return m.listFn(ctx)
}
func (m *mockVenueStore) SearchByName(ctx context.Context, term string) ([]model.Venue, error) {
	return m.searchFn(ctx, term)
}
func (m *mockVenueStore) Update(ctx context.Context, v *model.Venue) error { return m.updateFn(ctx, v) }
func (m *mockVenueStore) Delete(ctx context.Context, id uint64) error      { return m.deleteFn(ctx, id) }

// --- Mock ArtistStore ---

type mockArtistStore struct {
	createFn func(ctx context.Context, a *model.Artist) error
	getFn    func(ctx context.Context, id uint64) (*model.Artist, error)
	listFn   func(ctx context.Context) ([]model.Artist, error)
	searchFn func(ctx context.Context, term string) ([]model.Artist, error)
	updateFn func(ctx context.Context, a *model.Artist) error
	deleteFn func(ctx context.Context, id uint64) error
}

func (m *mockArtistStore) Create(ctx context.Context, a *model.Artist) error {
	return m.createFn(ctx, a)
}
func (m *mockArtistStore) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	return m.getFn(ctx, id)
}
func (m *mockArtistStore) ListAll(ctx context.Context) ([]model.Artist, error) { return m.listFn(ctx) }
func (m *mockArtistStore) SearchByName(ctx context.Context, term string) ([]model.Artist, error) {
	return m.searchFn(ctx, term)
}
func (m *mockArtistStore) Update(ctx context.Context, a *model.Artist) error {
	return m.updateFn(ctx, a)
}
func (m *mockArtistStore) Delete(ctx context.Context, id uint64) error { return m.deleteFn(ctx, id) }

// --- Mock ShowStore (also serves the per-venue/per-artist listers) ---

type mockShowStore struct {
	createFn       func(ctx context.Context, s *model.Show) error
	listFn         func(ctx context.Context) ([]model.Show, error)
	listByVenueFn  func(ctx context.Context, id uint64) ([]model.Show, error)
	listByArtistFn func(ctx context.Context, id uint64) ([]model.Show, error)
	deleteFn       func(ctx context.Context, id uint64) error
}

func (m *mockShowStore) Create(ctx context.Context, s *model.Show) error { return m.createFn(ctx, s) }
func (m *mockShowStore) ListAll(ctx context.Context) ([]model.Show, error) {
	return m.listFn(ctx)
}
func (m *mockShowStore) ListByVenue(ctx context.Context, id uint64) ([]model.Show, error) {
	return m.listByVenueFn(ctx, id)
}
func (m *mockShowStore) ListByArtist(ctx context.Context, id uint64) ([]model.Show, error) {
	return m.listByArtistFn(ctx, id)
}
func (m *mockShowStore) Delete(ctx context.Context, id uint64) error { return m.deleteFn(ctx, id) }

// --- Recording publisher ---

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.ListingEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.ListingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

var fixedNow = time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }
