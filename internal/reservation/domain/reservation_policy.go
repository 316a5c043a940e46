package domain

import (
	"errors"
	"time"
)

var (
	ErrNotAllowedToConfirmShortlyBeforeDeparture = errors.New("not allowed to confirm a reservation shortly before departure")
	ErrNotAllowedToReviseAnymore                 = errors.New("not allowed to revise this reservation anymore")
	ErrNotAllowedToCancelAnymore                  = errors.New("not allowed to cancel this reservation anymore")
)

// ReservationPolicy gates reservation operations by how close the itinerary's
// departure is to the current moment.
type ReservationPolicy struct {
	ReviseWindowDays int
	CancelWindowDays int
	Now              func() time.Time
}

// PassengerPolicy is the self-service policy applied to passenger-initiated
// requests.
func PassengerPolicy() ReservationPolicy {
	return ReservationPolicy{ReviseWindowDays: 7, CancelWindowDays: 1, Now: time.Now}
}

// AgentPolicy is the looser policy applied to agent-assisted requests,
// which may act arbitrarily close to (or even after) departure.
func AgentPolicy() ReservationPolicy {
	return ReservationPolicy{ReviseWindowDays: -365, CancelWindowDays: -365, Now: time.Now}
}

// TestPolicy imposes no window restriction at all, for use in tests.
func TestPolicy() ReservationPolicy {
	return ReservationPolicy{ReviseWindowDays: -1 << 30, CancelWindowDays: -1 << 30, Now: time.Now}
}

func (p ReservationPolicy) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p ReservationPolicy) daysUntilDeparture(itinerary Itinerary) int {
	return daysBetween(p.now(), itinerary.DepartureDate())
}

func (p ReservationPolicy) WithinRevisionPeriod(itinerary Itinerary) bool {
	return p.daysUntilDeparture(itinerary) >= p.ReviseWindowDays
}

func (p ReservationPolicy) WithinCancellationPeriod(itinerary Itinerary) bool {
	return p.daysUntilDeparture(itinerary) >= p.CancelWindowDays
}
