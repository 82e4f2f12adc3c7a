package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iliyamo/fyyur/internal/dto"
	"github.com/iliyamo/fyyur/internal/listing"
	"github.com/iliyamo/fyyur/internal/metrics"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
)

// ArtistStore is the persistence the artist use cases need.
type ArtistStore interface {
	Create(ctx context.Context, a *model.Artist) error
	GetByID(ctx context.Context, id uint64) (*model.Artist, error)
	ListAll(ctx context.Context) ([]model.Artist, error)
	SearchByName(ctx context.Context, term string) ([]model.Artist, error)
	Update(ctx context.Context, a *model.Artist) error
	Delete(ctx context.Context, id uint64) error
}

// ArtistShowLister returns the shows played by an artist, venue loaded.
type ArtistShowLister interface {
	ListByArtist(ctx context.Context, artistID uint64) ([]model.Show, error)
}

// ArtistService implements the artist pages and mutations.
type ArtistService struct {
	base
	artists ArtistStore
	shows   ArtistShowLister
}

// NewArtistService wires an ArtistService. A nil publisher disables events.
func NewArtistService(artists ArtistStore, shows ArtistShowLister, pub Publisher, log *slog.Logger) *ArtistService {
	return &ArtistService{base: newBase(pub, log), artists: artists, shows: shows}
}

// List returns every artist ordered by id.
func (s *ArtistService) List(ctx context.Context) ([]listing.ArtistSummary, error) {
	artists, err := s.artists.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return listing.BuildArtistSummaries(artists), nil
}

// Search returns artists whose name contains term, case-insensitively.
func (s *ArtistService) Search(ctx context.Context, term string) (listing.SearchResult, error) {
	artists, err := s.artists.SearchByName(ctx, term)
	if err != nil {
		return listing.SearchResult{}, fmt.Errorf("search artists: %w", err)
	}
	return listing.SearchArtists(artists, s.now()), nil
}

// Detail builds the artist page with its past and upcoming shows.
func (s *ArtistService) Detail(ctx context.Context, id uint64) (listing.ArtistDetail, error) {
	a, err := s.artists.GetByID(ctx, id)
	if err != nil {
		return listing.ArtistDetail{}, fmt.Errorf("get artist %d: %w", id, err)
	}
	shows, err := s.shows.ListByArtist(ctx, id)
	if err != nil {
		return listing.ArtistDetail{}, fmt.Errorf("shows of artist %d: %w", id, err)
	}
	return listing.BuildArtistDetail(*a, shows, s.now()), nil
}

// Get returns the stored artist, used to prefill the edit form.
func (s *ArtistService) Get(ctx context.Context, id uint64) (*model.Artist, error) {
	a, err := s.artists.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get artist %d: %w", id, err)
	}
	return a, nil
}

// Create validates the form and inserts a new artist.
func (s *ArtistService) Create(ctx context.Context, form dto.ArtistForm) (*model.Artist, error) {
	a, err := artistFromForm(form)
	if err != nil {
		return nil, err
	}
	err = s.artists.Create(ctx, &a)
	metrics.RecordMutation("artist", "create", err)
	if err != nil {
		return nil, fmt.Errorf("create artist: %w", err)
	}
	s.publish(ctx, s.event(queue.ArtistCreated, a.ID, a.Name))
	return &a, nil
}

// Update replaces every mutable field of artist id with the form values.
func (s *ArtistService) Update(ctx context.Context, id uint64, form dto.ArtistForm) (*model.Artist, error) {
	a, err := artistFromForm(form)
	if err != nil {
		return nil, err
	}
	a.ID = id
	err = s.artists.Update(ctx, &a)
	metrics.RecordMutation("artist", "update", err)
	if err != nil {
		return nil, fmt.Errorf("update artist %d: %w", id, err)
	}
	s.publish(ctx, s.event(queue.ArtistUpdated, a.ID, a.Name))
	return &a, nil
}

// Delete removes artist id together with its shows.
func (s *ArtistService) Delete(ctx context.Context, id uint64) error {
	err := s.artists.Delete(ctx, id)
	metrics.RecordMutation("artist", "delete", err)
	if err != nil {
		return fmt.Errorf("delete artist %d: %w", id, err)
	}
	s.publish(ctx, s.event(queue.ArtistDeleted, id, ""))
	return nil
}

func artistFromForm(f dto.ArtistForm) (model.Artist, error) {
	// whitespace-only counts as missing; stored values stay as submitted
	check := f
	check.Name = strings.TrimSpace(f.Name)
	check.City = strings.TrimSpace(f.City)
	check.State = strings.TrimSpace(f.State)
	if err := validateForm(check); err != nil {
		return model.Artist{}, err
	}
	return model.Artist{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Website:            f.Website,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		SeekingVenue:       f.SeekingVenue.Or(true),
		SeekingDescription: f.SeekingDescription.Or(model.DefaultArtistSeekingDescription),
		Genre:              f.Genre,
	}, nil
}
