// Package queue defines message payloads exchanged over the message broker
// and the publisher/consumer pair that moves them.
package queue

import "time"

// Listing event types. They double as routing keys on the listing exchange.
const (
	VenueCreated  = "listing.venue.created"
	VenueUpdated  = "listing.venue.updated"
	VenueDeleted  = "listing.venue.deleted"
	ArtistCreated = "listing.artist.created"
	ArtistUpdated = "listing.artist.updated"
	ArtistDeleted = "listing.artist.deleted"
	ShowCreated   = "listing.show.created"
	ShowDeleted   = "listing.show.deleted"
)

// ListingEvent is published after a venue, artist or show mutation has
// committed. It carries enough for an audit trail without querying the
// primary database.
type ListingEvent struct {
	Type       string `json:"type"`
	EntityID   uint64 `json:"entity_id"`
	Name       string `json:"name,omitempty"`
	VenueID    uint64 `json:"venue_id,omitempty"`
	ArtistID   uint64 `json:"artist_id,omitempty"`
	StartTime  string `json:"start_time,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// NewListingEvent stamps an event of the given type with the time at.
func NewListingEvent(typ string, id uint64, name string, at time.Time) ListingEvent {
	return ListingEvent{
		Type:       typ,
		EntityID:   id,
		Name:       name,
		OccurredAt: at.UTC().Format(time.RFC3339),
	}
}
