package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iliyamo/fyyur/internal/dto"
	"github.com/iliyamo/fyyur/internal/listing"
	"github.com/iliyamo/fyyur/internal/metrics"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
)

// ShowStore is the persistence the show use cases need.
type ShowStore interface {
	Create(ctx context.Context, s *model.Show) error
	ListAll(ctx context.Context) ([]model.Show, error)
	Delete(ctx context.Context, id uint64) error
}

// ShowService implements the show listing and mutations.
type ShowService struct {
	base
	shows ShowStore
}

// NewShowService wires a ShowService. A nil publisher disables events.
func NewShowService(shows ShowStore, pub Publisher, log *slog.Logger) *ShowService {
	return &ShowService{base: newBase(pub, log), shows: shows}
}

// List returns every show with venue and artist names.
func (s *ShowService) List(ctx context.Context) ([]listing.ShowListing, error) {
	shows, err := s.shows.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	return listing.BuildShowListings(shows), nil
}

// Create validates the form and inserts the show. The venue and artist must
// exist; otherwise the store reports a constraint error.
func (s *ShowService) Create(ctx context.Context, form dto.ShowForm) (*model.Show, error) {
	form.StartTime = strings.TrimSpace(form.StartTime)
	if err := validateForm(form); err != nil {
		return nil, err
	}
	start, err := ParseStartTime(form.StartTime)
	if err != nil {
		return nil, &ValidationError{Fields: []string{"start_time"}}
	}
	show := model.Show{VenueID: form.VenueID, ArtistID: form.ArtistID, StartTime: start}
	err = s.shows.Create(ctx, &show)
	metrics.RecordMutation("show", "create", err)
	if err != nil {
		return nil, fmt.Errorf("create show: %w", err)
	}
	ev := s.event(queue.ShowCreated, show.ID, "")
	ev.VenueID, ev.ArtistID = show.VenueID, show.ArtistID
	ev.StartTime = listing.FormatStartTime(show.StartTime)
	s.publish(ctx, ev)
	return &show, nil
}

// Delete removes show id.
func (s *ShowService) Delete(ctx context.Context, id uint64) error {
	err := s.shows.Delete(ctx, id)
	metrics.RecordMutation("show", "delete", err)
	if err != nil {
		return fmt.Errorf("delete show %d: %w", id, err)
	}
	s.publish(ctx, s.event(queue.ShowDeleted, id, ""))
	return nil
}

var startTimeLayouts = []string{
	time.RFC3339,
	listing.StartTimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// ParseStartTime accepts RFC 3339 or a zone-less "YYYY-MM-DD HH:MM[:SS]"
// value. Zone-less values are taken as UTC. The result is always UTC.
func ParseStartTime(s string) (time.Time, error) {
	for _, layout := range startTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised start_time %q", s)
}
