package listing

import (
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// ArtistAppearance is a show as seen from a venue page.
type ArtistAppearance struct {
	ArtistID        uint64 `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// VenueAppearance is a show as seen from an artist page.
type VenueAppearance struct {
	VenueID        uint64 `json:"venue_id"`
	VenueName      string `json:"venue_name"`
	VenueImageLink string `json:"venue_image_link"`
	StartTime      string `json:"start_time"`
}

// VenueDetail is the venue page.
type VenueDetail struct {
	ID                 uint64             `json:"id"`
	Name               string             `json:"name"`
	Genres             []string           `json:"genres"`
	Address            string             `json:"address"`
	City               string             `json:"city"`
	State              string             `json:"state"`
	Phone              string             `json:"phone"`
	Website            string             `json:"website"`
	FacebookLink       string             `json:"facebook_link"`
	SeekingTalent      bool               `json:"seeking_talent"`
	SeekingDescription string             `json:"seeking_description"`
	ImageLink          string             `json:"image_link"`
	PastShows          []ArtistAppearance `json:"past_shows"`
	UpcomingShows      []ArtistAppearance `json:"upcoming_shows"`
	PastShowsCount     int                `json:"past_shows_count"`
	UpcomingShowsCount int                `json:"upcoming_shows_count"`
}

// ArtistDetail is the artist page.
type ArtistDetail struct {
	ID                 uint64            `json:"id"`
	Name               string            `json:"name"`
	Genres             []string          `json:"genres"`
	City               string            `json:"city"`
	State              string            `json:"state"`
	Phone              string            `json:"phone"`
	Website            string            `json:"website"`
	FacebookLink       string            `json:"facebook_link"`
	SeekingVenue       bool              `json:"seeking_venue"`
	SeekingDescription string            `json:"seeking_description"`
	ImageLink          string            `json:"image_link"`
	PastShows          []VenueAppearance `json:"past_shows"`
	UpcomingShows      []VenueAppearance `json:"upcoming_shows"`
	PastShowsCount     int               `json:"past_shows_count"`
	UpcomingShowsCount int               `json:"upcoming_shows_count"`
}

// ArtistSummary is an entry on the artist listing page.
type ArtistSummary struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ShowListing is an entry on the show listing page.
type ShowListing struct {
	ID              uint64 `json:"id"`
	VenueID         uint64 `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	ArtistID        uint64 `json:"artist_id"`
	ArtistName      string `json:"artist_name"`
	ArtistImageLink string `json:"artist_image_link"`
	StartTime       string `json:"start_time"`
}

// SearchHit is one entity matched by a name search.
type SearchHit struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// SearchResult is the response of a name search.
type SearchResult struct {
	Count int         `json:"count"`
	Data  []SearchHit `json:"data"`
}

func genres(g string) []string {
	if g == "" {
		return []string{}
	}
	return []string{g}
}

// BuildVenueDetail builds the venue page.  shows must have Artist loaded and
// be ordered by start_time, id.
func BuildVenueDetail(v model.Venue, shows []model.Show, now time.Time) VenueDetail {
	past, upcoming := PartitionShows(shows, now)
	d := VenueDetail{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             genres(v.Genre),
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		Phone:              v.Phone,
		Website:            v.Website,
		FacebookLink:       v.FacebookLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
		ImageLink:          v.ImageLink,
		PastShows:          artistAppearances(past),
		UpcomingShows:      artistAppearances(upcoming),
	}
	d.PastShowsCount = len(d.PastShows)
	d.UpcomingShowsCount = len(d.UpcomingShows)
	return d
}

// BuildArtistDetail builds the artist page.  shows must have Venue loaded.
func BuildArtistDetail(a model.Artist, shows []model.Show, now time.Time) ArtistDetail {
	past, upcoming := PartitionShows(shows, now)
	d := ArtistDetail{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             genres(a.Genre),
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Website:            a.Website,
		FacebookLink:       a.FacebookLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
		ImageLink:          a.ImageLink,
		PastShows:          venueAppearances(past),
		UpcomingShows:      venueAppearances(upcoming),
	}
	d.PastShowsCount = len(d.PastShows)
	d.UpcomingShowsCount = len(d.UpcomingShows)
	return d
}

func artistAppearances(shows []model.Show) []ArtistAppearance {
	out := make([]ArtistAppearance, 0, len(shows))
	for _, s := range shows {
		a := ArtistAppearance{ArtistID: s.ArtistID, StartTime: FormatStartTime(s.StartTime)}
		if s.Artist != nil {
			a.ArtistName = s.Artist.Name
			a.ArtistImageLink = s.Artist.ImageLink
		}
		out = append(out, a)
	}
	return out
}

func venueAppearances(shows []model.Show) []VenueAppearance {
	out := make([]VenueAppearance, 0, len(shows))
	for _, s := range shows {
		a := VenueAppearance{VenueID: s.VenueID, StartTime: FormatStartTime(s.StartTime)}
		if s.Venue != nil {
			a.VenueName = s.Venue.Name
			a.VenueImageLink = s.Venue.ImageLink
		}
		out = append(out, a)
	}
	return out
}

// BuildShowListings renders shows with their venue and artist loaded.
func BuildShowListings(shows []model.Show) []ShowListing {
	out := make([]ShowListing, 0, len(shows))
	for _, s := range shows {
		l := ShowListing{
			ID:        s.ID,
			VenueID:   s.VenueID,
			ArtistID:  s.ArtistID,
			StartTime: FormatStartTime(s.StartTime),
		}
		if s.Venue != nil {
			l.VenueName = s.Venue.Name
		}
		if s.Artist != nil {
			l.ArtistName = s.Artist.Name
			l.ArtistImageLink = s.Artist.ImageLink
		}
		out = append(out, l)
	}
	return out
}

// BuildArtistSummaries renders the artist listing page.
func BuildArtistSummaries(artists []model.Artist) []ArtistSummary {
	out := make([]ArtistSummary, 0, len(artists))
	for _, a := range artists {
		out = append(out, ArtistSummary{ID: a.ID, Name: a.Name})
	}
	return out
}

// SearchVenues wraps matched venues, each carrying its shows.
func SearchVenues(venues []model.Venue, now time.Time) SearchResult {
	data := make([]SearchHit, 0, len(venues))
	for _, v := range venues {
		data = append(data, SearchHit{ID: v.ID, Name: v.Name, NumUpcomingShows: CountUpcoming(v.Shows, now)})
	}
	return SearchResult{Count: len(data), Data: data}
}

// SearchArtists wraps matched artists, each carrying its shows.
func SearchArtists(artists []model.Artist, now time.Time) SearchResult {
	data := make([]SearchHit, 0, len(artists))
	for _, a := range artists {
		data = append(data, SearchHit{ID: a.ID, Name: a.Name, NumUpcomingShows: CountUpcoming(a.Shows, now)})
	}
	return SearchResult{Count: len(data), Data: data}
}
