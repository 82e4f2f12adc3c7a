package model

import "time"

// Show represents a scheduled performance of one artist at one venue.
// VenueID and ArtistID are required foreign keys; Venue and Artist are
// only populated when a query preloads them.
//
// Fields:
//
//	ID        – primary key identifier.
//	VenueID   – venue hosting the show.
//	ArtistID  – artist performing.
//	StartTime – when the show begins, stored in UTC.
type Show struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	VenueID   uint64    `gorm:"not null;index" json:"venue_id"`
	ArtistID  uint64    `gorm:"not null;index" json:"artist_id"`
	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Venue  *Venue  `gorm:"foreignKey:VenueID" json:"-"`
	Artist *Artist `gorm:"foreignKey:ArtistID" json:"-"`
}
