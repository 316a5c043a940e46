package domain

import (
	"errors"
	"regexp"
)

// Airfield is an ICAO-coded takeoff/landing location. Equality is by id.
type Airfield struct {
	ID       AirfieldId
	Name     string
	Location GeoHash
}

var ErrMalformedAirfieldId = errors.New("airfield id must be 4 uppercase letters")

var airfieldIDPattern = regexp.MustCompile(`^[A-Z]{4}$`)

func NewAirfieldId(s string) (AirfieldId, error) {
	if !airfieldIDPattern.MatchString(s) {
		return "", ErrMalformedAirfieldId
	}
	return AirfieldId(s), nil
}

func NewAirfield(id AirfieldId, name string, location GeoHash) Airfield {
	return Airfield{ID: id, Name: name, Location: location}
}

func (a Airfield) Equal(other Airfield) bool { return a.ID == other.ID }
