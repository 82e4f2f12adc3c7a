package model

import "time"

// Default seeking descriptions applied when a form leaves the field out.
const (
	DefaultVenueSeekingDescription  = "Looking for new artists!"
	DefaultArtistSeekingDescription = "Looking to perform at a show!"
)

// Venue represents a physical location that hosts shows.  It corresponds
// to a row in the `venues` table.  Its shows are not stored on the row;
// they are looked up through shows.venue_id.
//
// Fields:
//
//	ID                 – primary key identifier.
//	Name               – display name, searched by substring.
//	City, State        – location used for grouping on the listing page.
//	SeekingTalent      – whether the venue is looking for artists.
//	SeekingDescription – free-text pitch shown when SeekingTalent is set.
//	Genre              – single free-text genre.
type Venue struct {
	ID                 uint64    `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"not null" json:"name"`
	City               string    `gorm:"size:120;not null" json:"city"`
	State              string    `gorm:"size:120;not null" json:"state"`
	Address            string    `gorm:"size:120" json:"address"`
	Phone              string    `gorm:"size:120" json:"phone"`
	Website            string    `gorm:"size:500" json:"website"`
	ImageLink          string    `gorm:"size:500" json:"image_link"`
	FacebookLink       string    `gorm:"size:120" json:"facebook_link"`
	SeekingTalent      bool      `gorm:"not null" json:"seeking_talent"`
	SeekingDescription string    `gorm:"size:1000" json:"seeking_description"`
	Genre              string    `json:"genre"`
	CreatedAt          time.Time `json:"-"`
	UpdatedAt          time.Time `json:"-"`

	Shows []Show `gorm:"foreignKey:VenueID" json:"-"`
}
