package domain

// Place is a named location. Equality is by location only.
type Place struct {
	Name     PlaceName
	Location GeoHash
}

func NewPlace(name PlaceName, location GeoHash) Place {
	return Place{Name: name, Location: location}
}

func (p Place) Equal(other Place) bool { return p.Location == other.Location }
