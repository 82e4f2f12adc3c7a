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

// VenueStore is the persistence the venue use cases need.
type VenueStore interface {
	Create(ctx context.Context, v *model.Venue) error
	GetByID(ctx context.Context, id uint64) (*model.Venue, error)
	ListWithShows(ctx context.Context) ([]model.Venue, error)
	SearchByName(ctx context.Context, term string) ([]model.Venue, error)
	Update(ctx context.Context, v *model.Venue) error
	Delete(ctx context.Context, id uint64) error
}

// VenueShowLister returns the shows hosted by a venue, artist loaded.
type VenueShowLister interface {
	ListByVenue(ctx context.Context, venueID uint64) ([]model.Show, error)
}

// VenueService implements the venue pages and mutations.
type VenueService struct {
	base
	venues VenueStore
	shows  VenueShowLister
}

// NewVenueService wires a VenueService. A nil publisher disables events.
func NewVenueService(venues VenueStore, shows VenueShowLister, pub Publisher, log *slog.Logger) *VenueService {
	return &VenueService{base: newBase(pub, log), venues: venues, shows: shows}
}

// ListByArea returns every venue grouped by (city, state) with upcoming
// show counts evaluated now.
func (s *VenueService) ListByArea(ctx context.Context) ([]listing.Area, error) {
	venues, err := s.venues.ListWithShows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return listing.GroupVenuesByLocation(venues, s.now()), nil
}

// Search returns venues whose name contains term, case-insensitively.
func (s *VenueService) Search(ctx context.Context, term string) (listing.SearchResult, error) {
	venues, err := s.venues.SearchByName(ctx, term)
	if err != nil {
		return listing.SearchResult{}, fmt.Errorf("search venues: %w", err)
	}
	return listing.SearchVenues(venues, s.now()), nil
}

// Detail builds the venue page with its past and upcoming shows.
func (s *VenueService) Detail(ctx context.Context, id uint64) (listing.VenueDetail, error) {
	v, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return listing.VenueDetail{}, fmt.Errorf("get venue %d: %w", id, err)
	}
	shows, err := s.shows.ListByVenue(ctx, id)
	if err != nil {
		return listing.VenueDetail{}, fmt.Errorf("shows of venue %d: %w", id, err)
	}
	return listing.BuildVenueDetail(*v, shows, s.now()), nil
}

// Get returns the stored venue, used to prefill the edit form.
func (s *VenueService) Get(ctx context.Context, id uint64) (*model.Venue, error) {
	v, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get venue %d: %w", id, err)
	}
	return v, nil
}

// Create validates the form and inserts a new venue.
func (s *VenueService) Create(ctx context.Context, form dto.VenueForm) (*model.Venue, error) {
	v, err := venueFromForm(form)
	if err != nil {
		return nil, err
	}
	err = s.venues.Create(ctx, &v)
	metrics.RecordMutation("venue", "create", err)
	if err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}
	s.publish(ctx, s.event(queue.VenueCreated, v.ID, v.Name))
	return &v, nil
}

// Update replaces every mutable field of venue id with the form values.
func (s *VenueService) Update(ctx context.Context, id uint64, form dto.VenueForm) (*model.Venue, error) {
	v, err := venueFromForm(form)
	if err != nil {
		return nil, err
	}
	v.ID = id
	err = s.venues.Update(ctx, &v)
	metrics.RecordMutation("venue", "update", err)
	if err != nil {
		return nil, fmt.Errorf("update venue %d: %w", id, err)
	}
	s.publish(ctx, s.event(queue.VenueUpdated, v.ID, v.Name))
	return &v, nil
}

// Delete removes venue id together with its shows.
func (s *VenueService) Delete(ctx context.Context, id uint64) error {
	err := s.venues.Delete(ctx, id)
	metrics.RecordMutation("venue", "delete", err)
	if err != nil {
		return fmt.Errorf("delete venue %d: %w", id, err)
	}
	s.publish(ctx, s.event(queue.VenueDeleted, id, ""))
	return nil
}

func venueFromForm(f dto.VenueForm) (model.Venue, error) {
	// whitespace-only counts as missing; stored values stay as submitted
	check := f
	check.Name = strings.TrimSpace(f.Name)
	check.City = strings.TrimSpace(f.City)
	check.State = strings.TrimSpace(f.State)
	check.Address = strings.TrimSpace(f.Address)
	if err := validateForm(check); err != nil {
		return model.Venue{}, err
	}
	return model.Venue{
		Name:               f.Name,
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		Website:            f.Website,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		SeekingTalent:      f.SeekingTalent.Or(true),
		SeekingDescription: f.SeekingDescription.Or(model.DefaultVenueSeekingDescription),
		Genre:              f.Genre,
	}, nil
}
