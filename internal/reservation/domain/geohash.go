package domain

import (
	"errors"

	gh "github.com/mmcloughlin/geohash"
)

// GeoHash is a validated geohash string.
type GeoHash string

var ErrMalformedGeoHash = errors.New("malformed geohash")

// NewGeoHash validates s by attempting to decode it; a geohash that
// doesn't decode cleanly through the standard base32 alphabet is rejected.
func NewGeoHash(s string) (GeoHash, error) {
	if s == "" {
		return "", ErrMalformedGeoHash
	}
	_, _, err := gh.ErrorDecode(s)
	if err != nil {
		return "", ErrMalformedGeoHash
	}
	return GeoHash(s), nil
}

func (g GeoHash) String() string { return string(g) }
