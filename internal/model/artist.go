package model

import "time"

// Artist represents a performer that can be booked into shows.  It
// corresponds to a row in the `artists` table.
type Artist struct {
	ID                 uint64    `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"not null" json:"name"`
	City               string    `gorm:"size:120;not null" json:"city"`
	State              string    `gorm:"size:120;not null" json:"state"`
	Phone              string    `gorm:"size:120" json:"phone"`
	Website            string    `gorm:"size:500" json:"website"`
	ImageLink          string    `gorm:"size:500" json:"image_link"`
	FacebookLink       string    `gorm:"size:120" json:"facebook_link"`
	SeekingVenue       bool      `gorm:"not null" json:"seeking_venue"`
	SeekingDescription string    `gorm:"size:1000" json:"seeking_description"`
	Genre              string    `json:"genre"`
	CreatedAt          time.Time `json:"-"`
	UpdatedAt          time.Time `json:"-"`

	Shows []Show `gorm:"foreignKey:ArtistID" json:"-"`
}
