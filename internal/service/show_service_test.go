package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/dto"
	"github.com/iliyamo/fyyur/internal/model"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
)

func newShowSvc(store *mockShowStore, pub Publisher) *ShowService {
	svc := NewShowService(store, pub, nil)
	svc.now = clock
	return svc
}

func TestShowCreate_ParsesStartTime(t *testing.T) {
	var stored model.Show
	store := &mockShowStore{createFn: func(ctx context.Context, s *model.Show) error {
		s.ID = 11
		stored = *s
		return nil
	}}
	pub := &recordingPublisher{}

	s, err := newShowSvc(store, pub).Create(context.Background(), dto.ShowForm{
		VenueID: 1, ArtistID: 4, StartTime: "2035-04-01 20:00:00",
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(11), s.ID)
	assert.Equal(t, time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC), stored.StartTime)
	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	assert.Equal(t, queue.ShowCreated, ev.Type)
	assert.Equal(t, uint64(1), ev.VenueID)
	assert.Equal(t, uint64(4), ev.ArtistID)
	assert.Equal(t, "2035-04-01 20:00:00", ev.StartTime)
}

func TestShowCreate_Invalid(t *testing.T) {
	store := &mockShowStore{createFn: func(ctx context.Context, s *model.Show) error {
		t.Fatal("store must not be called")
		return nil
	}}
	svc := newShowSvc(store, nil)

	_, err := svc.Create(context.Background(), dto.ShowForm{ArtistID: 4, StartTime: "2035-04-01 20:00:00"})
	assert.EqualError(t, err, "invalid form: venue_id")

	_, err = svc.Create(context.Background(), dto.ShowForm{VenueID: 1, ArtistID: 4, StartTime: "next friday"})
	assert.EqualError(t, err, "invalid form: start_time")
}

func TestShowCreate_MissingParent(t *testing.T) {
	store := &mockShowStore{createFn: func(ctx context.Context, s *model.Show) error {
		return repository.ErrConstraint
	}}
	pub := &recordingPublisher{}

	_, err := newShowSvc(store, pub).Create(context.Background(), dto.ShowForm{
		VenueID: 1, ArtistID: 999, StartTime: "2035-04-01T20:00:00Z",
	})

	assert.ErrorIs(t, err, repository.ErrConstraint)
	assert.Empty(t, pub.events)
}

func TestShowList(t *testing.T) {
	store := &mockShowStore{listFn: func(ctx context.Context) ([]model.Show, error) {
		return []model.Show{{
			ID: 1, VenueID: 1, ArtistID: 4,
			StartTime: time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC),
			Venue:     &model.Venue{Name: "The Musical Hop"},
			Artist:    &model.Artist{Name: "Guns N Petals"},
		}}, nil
	}}

	out, err := newShowSvc(store, nil).List(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "The Musical Hop", out[0].VenueName)
	assert.Equal(t, "2019-05-21 21:30:00", out[0].StartTime)
}

func TestShowDelete(t *testing.T) {
	store := &mockShowStore{deleteFn: func(ctx context.Context, id uint64) error { return nil }}
	pub := &recordingPublisher{}

	require.NoError(t, newShowSvc(store, pub).Delete(context.Background(), 3))
	require.Len(t, pub.events, 1)
	assert.Equal(t, queue.ShowDeleted, pub.events[0].Type)
}

func TestParseStartTime(t *testing.T) {
	want := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2035-04-01 20:00:00",
		"2035-04-01T20:00:00",
		"2035-04-01 20:00",
		"2035-04-01T20:00",
		"2035-04-01T20:00:00Z",
		"2035-04-01T13:00:00-07:00",
	} {
		got, err := ParseStartTime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
		assert.Equal(t, time.UTC, got.Location(), in)
	}

	_, err := ParseStartTime("01/04/2035")
	assert.Error(t, err)
}
