// Package repository contains data access logic separated from HTTP handlers.
// This file defines the repository methods for artists. Like venues, an
// artist's shows are derived from shows.artist_id.
package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iliyamo/fyyur/internal/listing"
	"github.com/iliyamo/fyyur/internal/model"
)

var artistColumns = []string{
	"name", "city", "state", "phone", "website", "image_link",
	"facebook_link", "seeking_venue", "seeking_description", "genre", "updated_at",
}

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db *gorm.DB
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *gorm.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

// Create inserts a new artist. On success a.ID holds the generated id.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(a).Error
	})
	return translate(err, ErrArtistNotFound)
}

// GetByID fetches an artist by id. It returns ErrArtistNotFound if no row exists.
func (r *ArtistRepo) GetByID(ctx context.Context, id uint64) (*model.Artist, error) {
	var a model.Artist
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err, ErrArtistNotFound)
	}
	return &a, nil
}

// ListAll returns every artist ordered by id, without shows.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]model.Artist, error) {
	var out []model.Artist
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, translate(err, ErrArtistNotFound)
	}
	return out, nil
}

// SearchByName returns artists whose name contains term, ignoring case,
// with Shows loaded. An empty term returns every artist.
func (r *ArtistRepo) SearchByName(ctx context.Context, term string) ([]model.Artist, error) {
	var out []model.Artist
	err := r.db.WithContext(ctx).
		Preload("Shows").
		Where("LOWER(name) LIKE ?", listing.SearchPattern(term)).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, translate(err, ErrArtistNotFound)
	}
	return out, nil
}

// Update replaces every mutable column of the artist identified by a.ID and
// reloads a from the stored row. It returns ErrArtistNotFound when the row
// does not exist.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.Artist
		if err := tx.Select("id").First(&cur, a.ID).Error; err != nil {
			return err
		}
		if err := tx.Model(&cur).Select(artistColumns).Updates(a).Error; err != nil {
			return err
		}
		return tx.First(a, a.ID).Error
	})
	return translate(err, ErrArtistNotFound)
}

// Delete removes an artist and its shows in one transaction. It returns
// ErrArtistNotFound when the artist does not exist; nothing is removed then.
func (r *ArtistRepo) Delete(ctx context.Context, id uint64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("artist_id = ?", id).Delete(&model.Show{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Artist{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrArtistNotFound
		}
		return nil
	})
	return translate(err, ErrArtistNotFound)
}
