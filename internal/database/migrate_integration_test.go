//go:build integration

// Shares the TEST_DB_* database with the repository tests; run with -p 1.

package database

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iliyamo/fyyur/internal/config"
)

func openTestDB(t *testing.T) (*gorm.DB, *slog.Logger) {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set")
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
	db, err := Open(config.DBConfig{
		Driver:  driver,
		User:    os.Getenv("TEST_DB_USER"),
		Pass:    os.Getenv("TEST_DB_PASS"),
		Host:    host,
		Port:    port,
		Name:    os.Getenv("TEST_DB_NAME"),
		SSLMode: "disable",
	}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db, log
}

func step(t *testing.T, version string) Migration {
	t.Helper()
	for _, m := range Migrations {
		if m.Version == version {
			return m
		}
	}
	t.Fatalf("no migration %s", version)
	return Migration{}
}

func count(t *testing.T, db *gorm.DB, table, where string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Where(where, args...).Count(&n).Error)
	return n
}

func TestRollback_RestoresJoinTablesAndGenreTables(t *testing.T) {
	db, log := openTestDB(t)
	ctx := context.Background()

	_, err := Migrate(ctx, db, log)
	require.NoError(t, err)
	for _, table := range []string{"shows", "venues", "artists"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	t.Cleanup(func() {
		_, _ = Migrate(ctx, db, log)
		for _, table := range []string{"shows", "venues", "artists"} {
			_ = db.Exec("DELETE FROM " + table).Error
		}
	})

	v := &venueV1{Name: "The Musical Hop", City: "San Francisco", State: "CA"}
	require.NoError(t, db.Create(v).Error)
	a := &artistV1{Name: "Guns N Petals", City: "San Francisco", State: "CA"}
	require.NoError(t, db.Create(a).Error)
	s := &showV1{VenueID: v.ID, ArtistID: a.ID, StartTime: time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)}
	require.NoError(t, db.Omit(clause.Associations).Create(s).Error)

	// 0004 down: every show is indexed again from both sides
	n, err := Rollback(ctx, db, 1, log)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	assert.Equal(t, int64(1), count(t, db, "venue_shows", "venue_id = ? AND show_id = ?", v.ID, s.ID))
	assert.Equal(t, int64(1), count(t, db, "artist_shows", "artist_id = ? AND show_id = ?", a.ID, s.ID))

	// re-running the back-fill adds nothing
	require.NoError(t, step(t, "0004").Down(db))
	assert.Equal(t, int64(1), count(t, db, "venue_shows", "show_id = ?", s.ID))
	assert.Equal(t, int64(1), count(t, db, "artist_shows", "show_id = ?", s.ID))

	// 0003 down: genre column gone, normalized tables back
	n, err = Rollback(ctx, db, 1, log)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	m := db.Migrator()
	assert.True(t, m.HasTable("genres"))
	assert.True(t, m.HasTable("venue_genres"))
	assert.True(t, m.HasTable("artist_genres"))
	assert.False(t, m.HasColumn(&venueGenreColV3{}, "Genre"))
	assert.False(t, m.HasColumn(&artistGenreColV3{}, "Genre"))
	require.NoError(t, step(t, "0003").Down(db))

	st, err := Status(ctx, db)
	require.NoError(t, err)
	require.Len(t, st, 4)
	assert.True(t, st[1].Applied)
	assert.False(t, st[2].Applied)
	assert.False(t, st[3].Applied)
}

func TestMigrate_ResumesAfterPartiallyAppliedStep(t *testing.T) {
	db, log := openTestDB(t)
	ctx := context.Background()

	_, err := Migrate(ctx, db, log)
	require.NoError(t, err)
	_, err = Rollback(ctx, db, 2, log)
	require.NoError(t, err)

	// schema of 0003 in place but not recorded, as after a failed commit
	require.NoError(t, step(t, "0003").Up(db))

	n, err := Migrate(ctx, db, log)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, db.Migrator().HasColumn(&venueGenreColV3{}, "Genre"))
	assert.False(t, db.Migrator().HasTable("venue_shows"))
}
