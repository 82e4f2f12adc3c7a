// Package dto holds the request payloads accepted by the HTTP layer.  Each
// form binds from either an HTML form post or a JSON body.
package dto

import (
	"encoding/json"
	"strconv"
	"strings"
)

// VenueForm is the create/edit payload for a venue.  Edit uses the same
// form with replace semantics: fields left out are written as empty.
type VenueForm struct {
	Name               string         `form:"name" json:"name" validate:"required"`
	City               string         `form:"city" json:"city" validate:"required"`
	State              string         `form:"state" json:"state" validate:"required"`
	Address            string         `form:"address" json:"address" validate:"required"`
	Phone              string         `form:"phone" json:"phone"`
	Website            string         `form:"website" json:"website"`
	ImageLink          string         `form:"image_link" json:"image_link"`
	FacebookLink       string         `form:"facebook_link" json:"facebook_link"`
	SeekingTalent      OptionalBool   `form:"seeking_talent" json:"seeking_talent"`
	SeekingDescription OptionalString `form:"seeking_description" json:"seeking_description"`
	Genre              string         `form:"genre" json:"genre"`
}

// ArtistForm is the create/edit payload for an artist.
type ArtistForm struct {
	Name               string         `form:"name" json:"name" validate:"required"`
	City               string         `form:"city" json:"city" validate:"required"`
	State              string         `form:"state" json:"state" validate:"required"`
	Phone              string         `form:"phone" json:"phone"`
	Website            string         `form:"website" json:"website"`
	ImageLink          string         `form:"image_link" json:"image_link"`
	FacebookLink       string         `form:"facebook_link" json:"facebook_link"`
	SeekingVenue       OptionalBool   `form:"seeking_venue" json:"seeking_venue"`
	SeekingDescription OptionalString `form:"seeking_description" json:"seeking_description"`
	Genre              string         `form:"genre" json:"genre"`
}

// ShowForm is the create payload for a show.  StartTime accepts RFC 3339 or
// "2006-01-02 15:04:05"; it is parsed by the service.
type ShowForm struct {
	VenueID   uint64 `form:"venue_id" json:"venue_id" validate:"required"`
	ArtistID  uint64 `form:"artist_id" json:"artist_id" validate:"required"`
	StartTime string `form:"start_time" json:"start_time" validate:"required"`
}

// SearchForm carries the search box value.  An empty term matches all rows.
type SearchForm struct {
	SearchTerm string `form:"search_term" json:"search_term" query:"search_term"`
}

// OptionalBool is a boolean form field that remembers whether it was sent.
// HTML checkboxes post "y", "on" or "True"; JSON clients send true/false.
type OptionalBool struct {
	Set   bool
	Value bool
}

// Or returns the submitted value, or def when the field was absent.
func (b OptionalBool) Or(def bool) bool {
	if !b.Set {
		return def
	}
	return b.Value
}

// UnmarshalParam implements echo.BindUnmarshaler for form and query binding.
func (b *OptionalBool) UnmarshalParam(param string) error {
	v, err := parseFormBool(param)
	if err != nil {
		return err
	}
	b.Set, b.Value = true, v
	return nil
}

// UnmarshalJSON accepts JSON booleans, strings and null.
func (b *OptionalBool) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*b = OptionalBool{}
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		return b.UnmarshalParam(unq)
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	b.Set, b.Value = true, v
	return nil
}

// OptionalString is a text form field that remembers whether it was sent,
// so an explicitly empty value can be told apart from an absent one.
type OptionalString struct {
	Set   bool
	Value string
}

// Or returns the submitted value, or def when the field was absent.
func (s OptionalString) Or(def string) string {
	if !s.Set {
		return def
	}
	return s.Value
}

// UnmarshalParam implements echo.BindUnmarshaler for form and query binding.
func (s *OptionalString) UnmarshalParam(param string) error {
	s.Set, s.Value = true, param
	return nil
}

// UnmarshalJSON accepts a JSON string; null leaves the field unset.
func (s *OptionalString) UnmarshalJSON(data []byte) error {
	if strings.TrimSpace(string(data)) == "null" {
		*s = OptionalString{}
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	s.Set, s.Value = true, v
	return nil
}

func parseFormBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "on":
		return true, nil
	case "n", "no", "off", "":
		return false, nil
	}
	return strconv.ParseBool(s)
}
