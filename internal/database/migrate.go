package database

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"gorm.io/gorm"
)

// Migration is one reversible schema step. Steps use their own snapshot
// structs so the history does not drift when the model package changes.
type Migration struct {
	Version string
	Name    string
	Up      func(tx *gorm.DB) error
	Down    func(tx *gorm.DB) error
}

// MigrationStatus reports whether a step has been applied.
type MigrationStatus struct {
	Version   string
	Name      string
	Applied   bool
	AppliedAt *time.Time
}

type schemaMigration struct {
	Version   string    `gorm:"primaryKey;size:32"`
	Name      string    `gorm:"size:120;not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (schemaMigration) TableName() string { return "schema_migrations" }

// Snapshot of the first schema: shows owned through venue_shows and
// artist_shows join tables.
type venueV1 struct {
	ID                 uint64 `gorm:"primaryKey"`
	Name               string `gorm:"not null"`
	City               string `gorm:"size:120;not null"`
	State              string `gorm:"size:120;not null"`
	Address            string `gorm:"size:120"`
	Phone              string `gorm:"size:120"`
	Website            string `gorm:"size:500"`
	ImageLink          string `gorm:"size:500"`
	FacebookLink       string `gorm:"size:120"`
	SeekingTalent      bool   `gorm:"not null"`
	SeekingDescription string `gorm:"size:1000"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (venueV1) TableName() string { return "venues" }

type artistV1 struct {
	ID                 uint64 `gorm:"primaryKey"`
	Name               string `gorm:"not null"`
	City               string `gorm:"size:120;not null"`
	State              string `gorm:"size:120;not null"`
	Phone              string `gorm:"size:120"`
	Website            string `gorm:"size:500"`
	ImageLink          string `gorm:"size:500"`
	FacebookLink       string `gorm:"size:120"`
	SeekingVenue       bool   `gorm:"not null"`
	SeekingDescription string `gorm:"size:1000"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (artistV1) TableName() string { return "artists" }

type showV1 struct {
	ID        uint64    `gorm:"primaryKey"`
	VenueID   uint64    `gorm:"not null;index"`
	ArtistID  uint64    `gorm:"not null;index"`
	StartTime time.Time `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Venue  *venueV1  `gorm:"foreignKey:VenueID"`
	Artist *artistV1 `gorm:"foreignKey:ArtistID"`
}

func (showV1) TableName() string { return "shows" }

type venueShowV1 struct {
	VenueID uint64 `gorm:"primaryKey;autoIncrement:false"`
	ShowID  uint64 `gorm:"primaryKey;autoIncrement:false"`
}

func (venueShowV1) TableName() string { return "venue_shows" }

type artistShowV1 struct {
	ArtistID uint64 `gorm:"primaryKey;autoIncrement:false"`
	ShowID   uint64 `gorm:"primaryKey;autoIncrement:false"`
}

func (artistShowV1) TableName() string { return "artist_shows" }

// Snapshot of the normalized genre tables.
type genreV2 struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string `gorm:"size:120;not null;uniqueIndex"`
}

func (genreV2) TableName() string { return "genres" }

type venueGenreV2 struct {
	ID      uint64 `gorm:"primaryKey"`
	VenueID uint64 `gorm:"index"`
	GenreID uint64 `gorm:"index"`
}

func (venueGenreV2) TableName() string { return "venue_genres" }

type artistGenreV2 struct {
	ID       uint64 `gorm:"primaryKey"`
	ArtistID uint64 `gorm:"index"`
	GenreID  uint64 `gorm:"index"`
}

func (artistGenreV2) TableName() string { return "artist_genres" }

// Single free-text genre column.
type venueGenreColV3 struct {
	ID    uint64 `gorm:"primaryKey"`
	Genre string
}

func (venueGenreColV3) TableName() string { return "venues" }

type artistGenreColV3 struct {
	ID    uint64 `gorm:"primaryKey"`
	Genre string
}

func (artistGenreColV3) TableName() string { return "artists" }

// Migrations is the ordered schema history. Every step can be re-run after
// a partial failure: MySQL commits DDL implicitly, so the surrounding
// transaction only covers the schema_migrations row there.
var Migrations = []Migration{
	{
		Version: "0001",
		Name:    "create venues artists shows",
		Up: func(tx *gorm.DB) error {
			return createMissing(tx, &venueV1{}, &artistV1{}, &showV1{}, &venueShowV1{}, &artistShowV1{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&artistShowV1{}, &venueShowV1{}, &showV1{}, &artistV1{}, &venueV1{})
		},
	},
	{
		Version: "0002",
		Name:    "create genre tables",
		Up: func(tx *gorm.DB) error {
			return createMissing(tx, &genreV2{}, &venueGenreV2{}, &artistGenreV2{})
		},
		Down: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&artistGenreV2{}, &venueGenreV2{}, &genreV2{})
		},
	},
	{
		Version: "0003",
		Name:    "collapse genres into a column",
		Up: func(tx *gorm.DB) error {
			if err := tx.Migrator().DropTable(&artistGenreV2{}, &venueGenreV2{}, &genreV2{}); err != nil {
				return err
			}
			if err := addColumn(tx, &artistGenreColV3{}, "Genre"); err != nil {
				return err
			}
			return addColumn(tx, &venueGenreColV3{}, "Genre")
		},
		Down: func(tx *gorm.DB) error {
			if err := dropColumn(tx, &venueGenreColV3{}, "Genre"); err != nil {
				return err
			}
			if err := dropColumn(tx, &artistGenreColV3{}, "Genre"); err != nil {
				return err
			}
			return createMissing(tx, &genreV2{}, &venueGenreV2{}, &artistGenreV2{})
		},
	},
	{
		Version: "0004",
		Name:    "drop show join tables",
		Up: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&artistShowV1{}, &venueShowV1{})
		},
		Down: func(tx *gorm.DB) error {
			if err := createMissing(tx, &venueShowV1{}, &artistShowV1{}); err != nil {
				return err
			}
			if err := tx.Exec(`INSERT INTO venue_shows (venue_id, show_id)
				SELECT s.venue_id, s.id FROM shows s
				WHERE NOT EXISTS (SELECT 1 FROM venue_shows v WHERE v.show_id = s.id AND v.venue_id = s.venue_id)`).Error; err != nil {
				return err
			}
			return tx.Exec(`INSERT INTO artist_shows (artist_id, show_id)
				SELECT s.artist_id, s.id FROM shows s
				WHERE NOT EXISTS (SELECT 1 FROM artist_shows a WHERE a.show_id = s.id AND a.artist_id = s.artist_id)`).Error
		},
	},
}

// createMissing creates the tables of models that do not exist yet.
func createMissing(tx *gorm.DB, models ...any) error {
	m := tx.Migrator()
	for _, model := range models {
		if m.HasTable(model) {
			continue
		}
		if err := m.CreateTable(model); err != nil {
			return err
		}
	}
	return nil
}

func addColumn(tx *gorm.DB, model any, field string) error {
	if tx.Migrator().HasColumn(model, field) {
		return nil
	}
	return tx.Migrator().AddColumn(model, field)
}

func dropColumn(tx *gorm.DB, model any, field string) error {
	if !tx.Migrator().HasColumn(model, field) {
		return nil
	}
	return tx.Migrator().DropColumn(model, field)
}

func applied(ctx context.Context, db *gorm.DB) (map[string]schemaMigration, error) {
	if err := db.WithContext(ctx).Migrator().AutoMigrate(&schemaMigration{}); err != nil {
		return nil, fmt.Errorf("schema_migrations: %w", err)
	}
	var rows []schemaMigration
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]schemaMigration, len(rows))
	for _, r := range rows {
		out[r.Version] = r
	}
	return out, nil
}

// Migrate applies every pending step in version order. It returns the
// number of steps applied.
func Migrate(ctx context.Context, db *gorm.DB, log *slog.Logger) (int, error) {
	return migrate(ctx, db, Migrations, log)
}

func migrate(ctx context.Context, db *gorm.DB, steps []Migration, log *slog.Logger) (int, error) {
	done, err := applied(ctx, db)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, m := range sorted(steps) {
		if _, ok := done[m.Version]; ok {
			continue
		}
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{Version: m.Version, Name: m.Name, AppliedAt: time.Now().UTC()}).Error
		})
		if err != nil {
			return n, fmt.Errorf("migration %s (%s): %w", m.Version, m.Name, err)
		}
		log.Info("migration applied", "version", m.Version, "name", m.Name)
		n++
	}
	return n, nil
}

// Rollback reverts the last count applied steps, newest first.
func Rollback(ctx context.Context, db *gorm.DB, count int, log *slog.Logger) (int, error) {
	return rollback(ctx, db, Migrations, count, log)
}

func rollback(ctx context.Context, db *gorm.DB, steps []Migration, count int, log *slog.Logger) (int, error) {
	done, err := applied(ctx, db)
	if err != nil {
		return 0, err
	}
	ordered := sorted(steps)
	n := 0
	for i := len(ordered) - 1; i >= 0 && n < count; i-- {
		m := ordered[i]
		if _, ok := done[m.Version]; !ok {
			continue
		}
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&schemaMigration{}, "version = ?", m.Version).Error
		})
		if err != nil {
			return n, fmt.Errorf("rollback %s (%s): %w", m.Version, m.Name, err)
		}
		log.Info("migration reverted", "version", m.Version, "name", m.Name)
		n++
	}
	return n, nil
}

// Status lists every known step with its applied state.
func Status(ctx context.Context, db *gorm.DB) ([]MigrationStatus, error) {
	done, err := applied(ctx, db)
	if err != nil {
		return nil, err
	}
	return status(Migrations, done), nil
}

func status(steps []Migration, done map[string]schemaMigration) []MigrationStatus {
	out := make([]MigrationStatus, 0, len(steps))
	for _, m := range sorted(steps) {
		st := MigrationStatus{Version: m.Version, Name: m.Name}
		if r, ok := done[m.Version]; ok {
			at := r.AppliedAt
			st.Applied = true
			st.AppliedAt = &at
		}
		out = append(out, st)
	}
	return out
}

func sorted(steps []Migration) []Migration {
	out := append([]Migration(nil), steps...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out
}
