// Package repository contains data access logic separated from HTTP handlers.
// This file defines the repository methods for venues: CRUD, listing and
// name search. A venue's shows are never stored on the venue row; they are
// derived from shows.venue_id.
package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iliyamo/fyyur/internal/listing"
	"github.com/iliyamo/fyyur/internal/model"
)

// venueColumns are the mutable columns written by a full-record update.
var venueColumns = []string{
	"name", "city", "state", "address", "phone", "website", "image_link",
	"facebook_link", "seeking_talent", "seeking_description", "genre", "updated_at",
}

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db *gorm.DB
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *gorm.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// Create inserts a new venue. On success v.ID holds the generated id.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(v).Error
	})
	return translate(err, ErrVenueNotFound)
}

// GetByID fetches a venue by id. It returns ErrVenueNotFound if no row exists.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	var v model.Venue
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, translate(err, ErrVenueNotFound)
	}
	return &v, nil
}

// ListWithShows returns every venue ordered by id with Shows loaded.
func (r *VenueRepo) ListWithShows(ctx context.Context) ([]model.Venue, error) {
	var out []model.Venue
	err := r.db.WithContext(ctx).
		Preload("Shows", func(db *gorm.DB) *gorm.DB { return db.Order("start_time ASC, id ASC") }).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err, ErrVenueNotFound)
	}
	return out, nil
}

// SearchByName returns venues whose name contains term, ignoring case,
// with Shows loaded. An empty term returns every venue.
func (r *VenueRepo) SearchByName(ctx context.Context, term string) ([]model.Venue, error) {
	var out []model.Venue
	err := r.db.WithContext(ctx).
		Preload("Shows").
		Where("LOWER(name) LIKE ?", listing.SearchPattern(term)).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err, ErrVenueNotFound)
	}
	return out, nil
}

// Update replaces every mutable column of the venue identified by v.ID and
// reloads v from the stored row. It returns ErrVenueNotFound when the row
// does not exist.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.Venue
		if err := tx.Select("id").First(&cur, v.ID).Error; err != nil {
			return err
		}
		if err := tx.Model(&cur).Select(venueColumns).Updates(v).Error; err != nil {
			return err
		}
		return tx.First(v, v.ID).Error
	})
	return translate(err, ErrVenueNotFound)
}

// Delete removes a venue and its shows in one transaction. It returns
// ErrVenueNotFound when the venue does not exist; nothing is removed then.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("venue_id = ?", id).Delete(&model.Show{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Venue{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVenueNotFound
		}
		return nil
	})
	return translate(err, ErrVenueNotFound)
}
