//go:build integration

// Shares the TEST_DB_* database with the database package tests; run with -p 1.

package repository

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/model"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		os.Exit(0)
	}
	driver := os.Getenv("TEST_DB_DRIVER")
	if driver == "" {
		driver = config.DriverPostgres
	}
	port := os.Getenv("TEST_DB_PORT")
	if port == "" {
		port = "5432"
		if driver == config.DriverMySQL {
			port = "3306"
		}
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	db, err := database.Open(config.DBConfig{
		Driver:  driver,
		User:    os.Getenv("TEST_DB_USER"),
		Pass:    os.Getenv("TEST_DB_PASS"),
		Host:    host,
		Port:    port,
		Name:    os.Getenv("TEST_DB_NAME"),
		SSLMode: "disable",
	}, log)
	if err != nil {
		log.Error("open test database", "err", err)
		os.Exit(1)
	}
	if _, err := database.Migrate(context.Background(), db, log); err != nil {
		log.Error("migrate test database", "err", err)
		os.Exit(1)
	}
	testDB = db
	code := m.Run()
	_ = database.Close(db)
	os.Exit(code)
}

func reset(t *testing.T) {
	t.Helper()
	for _, table := range []string{"shows", "venues", "artists"} {
		require.NoError(t, testDB.Exec("DELETE FROM "+table).Error)
	}
}

func seed(t *testing.T) (*model.Venue, *model.Artist) {
	t.Helper()
	ctx := context.Background()
	v := &model.Venue{Name: "The Musical Hop", City: "San Francisco", State: "CA", Address: "1015 Folsom Street", Genre: "Jazz"}
	require.NoError(t, NewVenueRepo(testDB).Create(ctx, v))
	a := &model.Artist{Name: "Guns N Petals", City: "San Francisco", State: "CA", Genre: "Rock n Roll"}
	require.NoError(t, NewArtistRepo(testDB).Create(ctx, a))
	return v, a
}

func TestVenueRepo_CRUD(t *testing.T) {
	reset(t)
	ctx := context.Background()
	repo := NewVenueRepo(testDB)
	v, _ := seed(t)

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Musical Hop", got.Name)

	upd := &model.Venue{ID: v.ID, Name: "The Musical Hop", City: "Oakland", State: "CA", Address: "1 Main"}
	require.NoError(t, repo.Update(ctx, upd))
	assert.Equal(t, "Oakland", upd.City)
	assert.Equal(t, "", upd.Genre)

	err = repo.Update(ctx, &model.Venue{ID: v.ID + 1000, Name: "x", City: "x", State: "x", Address: "x"})
	assert.ErrorIs(t, err, ErrVenueNotFound)

	_, err = repo.GetByID(ctx, v.ID+1000)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVenueRepo_SearchIsCaseInsensitiveAndLiteral(t *testing.T) {
	reset(t)
	ctx := context.Background()
	repo := NewVenueRepo(testDB)
	seed(t)
	require.NoError(t, repo.Create(ctx, &model.Venue{Name: "100% Club", City: "New York", State: "NY", Address: "x"}))

	hits, err := repo.SearchByName(ctx, "HOP")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "The Musical Hop", hits[0].Name)

	hits, err = repo.SearchByName(ctx, "%")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "100% Club", hits[0].Name)

	hits, err = repo.SearchByName(ctx, "")
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestShowRepo_CreateRequiresParents(t *testing.T) {
	reset(t)
	ctx := context.Background()
	repo := NewShowRepo(testDB)
	v, a := seed(t)

	err := repo.Create(ctx, &model.Show{VenueID: v.ID + 1000, ArtistID: a.ID, StartTime: time.Now()})
	assert.ErrorIs(t, err, ErrConstraint)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestShowRepo_ListingsLoadParents(t *testing.T) {
	reset(t)
	ctx := context.Background()
	repo := NewShowRepo(testDB)
	v, a := seed(t)
	start := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &model.Show{VenueID: v.ID, ArtistID: a.ID, StartTime: start}))
	require.NoError(t, repo.Create(ctx, &model.Show{VenueID: v.ID, ArtistID: a.ID, StartTime: start.Add(-time.Hour)}))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].StartTime.Before(all[1].StartTime))
	assert.Equal(t, "The Musical Hop", all[0].Venue.Name)
	assert.Equal(t, "Guns N Petals", all[0].Artist.Name)

	byVenue, err := repo.ListByVenue(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, byVenue, 2)
	assert.NotNil(t, byVenue[0].Artist)

	byArtist, err := repo.ListByArtist(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, byArtist, 2)
	assert.NotNil(t, byArtist[0].Venue)
	assert.True(t, byArtist[1].StartTime.Equal(start))

	assert.ErrorIs(t, repo.Delete(ctx, all[0].ID+1000), ErrShowNotFound)
	require.NoError(t, repo.Delete(ctx, all[0].ID))
}

func TestVenueRepo_DeleteCascadesToShows(t *testing.T) {
	reset(t)
	ctx := context.Background()
	v, a := seed(t)
	shows := NewShowRepo(testDB)
	require.NoError(t, shows.Create(ctx, &model.Show{VenueID: v.ID, ArtistID: a.ID, StartTime: time.Now()}))

	require.NoError(t, NewVenueRepo(testDB).Delete(ctx, v.ID))

	rest, err := shows.ListByArtist(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.ErrorIs(t, NewVenueRepo(testDB).Delete(ctx, v.ID), ErrVenueNotFound)
}

func TestArtistRepo_ListAllAndDelete(t *testing.T) {
	reset(t)
	ctx := context.Background()
	repo := NewArtistRepo(testDB)
	v, a := seed(t)
	require.NoError(t, NewShowRepo(testDB).Create(ctx, &model.Show{VenueID: v.ID, ArtistID: a.ID, StartTime: time.Now()}))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, a.ID))
	left, err := NewShowRepo(testDB).ListByVenue(ctx, v.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestGetByID_ReturnsEverySubmittedField(t *testing.T) {
	reset(t)
	ctx := context.Background()

	v := &model.Venue{
		Name:               "The Dueling Pianos Bar",
		City:               "New York",
		State:              "NY",
		Address:            "335 Delancey Street",
		Phone:              "914-003-1132",
		Website:            "https://www.theduelingpianos.com",
		ImageLink:          "https://images.unsplash.com/photo-1497032205916",
		FacebookLink:       "https://www.facebook.com/theduelingpianos",
		SeekingTalent:      false,
		SeekingDescription: "Booked through spring.",
		Genre:              "Classical",
	}
	require.NoError(t, NewVenueRepo(testDB).Create(ctx, v))
	gotV, err := NewVenueRepo(testDB).GetByID(ctx, v.ID)
	require.NoError(t, err)
	want := *v
	want.CreatedAt, want.UpdatedAt = gotV.CreatedAt, gotV.UpdatedAt
	assert.Equal(t, want, *gotV)

	a := &model.Artist{
		Name:               "Matt Quevedo",
		City:               "New York",
		State:              "NY",
		Phone:              "300-400-5000",
		Website:            "https://www.mattquevedo.com",
		ImageLink:          "https://images.unsplash.com/photo-1495223153807",
		FacebookLink:       "https://www.facebook.com/mattquevedo923251523",
		SeekingVenue:       false,
		SeekingDescription: "Touring until June.",
		Genre:              "Jazz",
	}
	require.NoError(t, NewArtistRepo(testDB).Create(ctx, a))
	gotA, err := NewArtistRepo(testDB).GetByID(ctx, a.ID)
	require.NoError(t, err)
	wantA := *a
	wantA.CreatedAt, wantA.UpdatedAt = gotA.CreatedAt, gotA.UpdatedAt
	assert.Equal(t, wantA, *gotA)
}
