package domain

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrNoPassengers                     = errors.New("no passengers")
	ErrTooManyPassengers                = errors.New("too many passengers")
	ErrNumberOfPassengersAreDifferent   = errors.New("number of passengers is different from the current count")
)

// PassengerArrangement is an adults/children head count without named
// individuals.
type PassengerArrangement struct {
	Adults   uint8
	Children uint8
}

func NewPassengerArrangement(adults, children uint8) (PassengerArrangement, error) {
	total := int(adults) + int(children)
	if total < 1 {
		return PassengerArrangement{}, ErrNoPassengers
	}
	if total > 255 {
		return PassengerArrangement{}, ErrTooManyPassengers
	}
	return PassengerArrangement{Adults: adults, Children: children}, nil
}

func (a PassengerArrangement) Count() int { return int(a.Adults) + int(a.Children) }

// Passenger is a named individual with a date of birth.
type Passenger struct {
	Name        PersonFullName
	DateOfBirth time.Time
}

func (p Passenger) Equal(other Passenger) bool {
	return p.Name == other.Name && p.DateOfBirth.Equal(other.DateOfBirth)
}

// Passengers is a sum type: either an anonymous Arrangement or a named List.
type Passengers struct {
	arrangement *PassengerArrangement
	list        *SortedSet[Passenger]
}

// NewPassengers starts as an Arrangement.
func NewPassengers(arrangement PassengerArrangement) Passengers {
	return Passengers{arrangement: &arrangement}
}

// IsList reports whether this value currently holds a named List.
func (p Passengers) IsList() bool { return p.list != nil }

// List transitions to a named list, validating that its length matches the
// count currently in effect (whichever variant is active).
func (p Passengers) List(passengers SortedSet[Passenger]) (Passengers, error) {
	if passengers.Len() != p.Count() {
		return p, ErrNumberOfPassengersAreDifferent
	}
	return Passengers{list: &passengers}, nil
}

// Arrangement returns the adults/children split, computing it from a List
// against asOf when the current variant is List; returns the stored
// arrangement directly otherwise.
func (p Passengers) Arrangement(asOf time.Time) PassengerArrangement {
	if p.arrangement != nil {
		return *p.arrangement
	}
	var adults, children uint8
	for _, person := range p.list.Items() {
		age := asOf.Year() - person.DateOfBirth.Year()
		if asOf.YearDay() < person.DateOfBirth.YearDay() {
			age--
		}
		if age >= 18 {
			adults++
		} else {
			children++
		}
	}
	return PassengerArrangement{Adults: adults, Children: children}
}

// Count returns the total passenger count regardless of variant.
func (p Passengers) Count() int {
	if p.list != nil {
		return p.list.Len()
	}
	return p.arrangement.Count()
}

func (p Passengers) Equal(other Passengers) bool {
	if p.Count() != other.Count() {
		return false
	}
	if p.list != nil && other.list != nil {
		return p.list.Equal(*other.list)
	}
	if p.arrangement != nil && other.arrangement != nil {
		return *p.arrangement == *other.arrangement
	}
	return false
}

// passengersEnvelope is the tagged-variant wire form, mirroring the
// Arrangement/List sum type: exactly one of the two fields is present.
type passengersEnvelope struct {
	Arrangement *PassengerArrangement `json:"arrangement,omitempty"`
	List        []Passenger           `json:"list,omitempty"`
}

func (p Passengers) MarshalJSON() ([]byte, error) {
	envelope := passengersEnvelope{}
	if p.list != nil {
		envelope.List = p.list.Items()
	} else {
		envelope.Arrangement = p.arrangement
	}
	return json.Marshal(envelope)
}

func (p *Passengers) UnmarshalJSON(data []byte) error {
	var envelope passengersEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	if envelope.List != nil {
		list := NewSortedSet(envelope.List...)
		p.list = &list
		p.arrangement = nil
		return nil
	}
	if envelope.Arrangement != nil {
		p.arrangement = envelope.Arrangement
		p.list = nil
		return nil
	}
	return ErrNoPassengers
}
