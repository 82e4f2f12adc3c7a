// Package repository contains data access logic for Show domain operations.
// A show links exactly one venue and one artist; this file also serves the
// back-references from a venue or artist to its shows.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iliyamo/fyyur/internal/model"
)

const showOrder = "start_time ASC, id ASC"

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *gorm.DB
}

// NewShowRepo creates a new ShowRepo.
func NewShowRepo(db *gorm.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a show after checking, inside the same transaction, that
// its venue and artist exist. A missing parent yields ErrConstraint and
// nothing is written. StartTime is stored in UTC.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	s.StartTime = s.StartTime.UTC()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&model.Venue{}, s.VenueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: venue %d does not exist", ErrConstraint, s.VenueID)
			}
			return err
		}
		if err := tx.Select("id").First(&model.Artist{}, s.ArtistID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: artist %d does not exist", ErrConstraint, s.ArtistID)
			}
			return err
		}
		return tx.Omit(clause.Associations).Create(s).Error
	})
	return translate(err, ErrShowNotFound)
}

// ListAll returns every show with venue and artist loaded, ordered by
// start_time then id.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.Show, error) {
	var out []model.Show
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Preload("Artist").
		Order(showOrder).
		Find(&out).Error
	if err != nil {
		return nil, translate(err, ErrShowNotFound)
	}
	return out, nil
}

// ListByVenue returns the shows of a venue with the performing artist
// loaded, ordered by start_time then id.
func (r *ShowRepo) ListByVenue(ctx context.Context, venueID uint64) ([]model.Show, error) {
	var out []model.Show
	err := r.db.WithContext(ctx).
		Preload("Artist").
		Where("venue_id = ?", venueID).
		Order(showOrder).
		Find(&out).Error
	if err != nil {
		return nil, translate(err, ErrShowNotFound)
	}
	return out, nil
}

// ListByArtist returns the shows of an artist with the hosting venue
// loaded, ordered by start_time then id.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID uint64) ([]model.Show, error) {
	var out []model.Show
	err := r.db.WithContext(ctx).
		Preload("Venue").
		Where("artist_id = ?", artistID).
		Order(showOrder).
		Find(&out).Error
	if err != nil {
		return nil, translate(err, ErrShowNotFound)
	}
	return out, nil
}

// Delete removes a single show. It returns ErrShowNotFound when no row
// matched.
func (r *ShowRepo) Delete(ctx context.Context, id uint64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.Show{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrShowNotFound
		}
		return nil
	})
	return translate(err, ErrShowNotFound)
}
