package domain

// PricePerDayPerPassenger is the flat nightly rate used by Price.
var PricePerDayPerPassenger = USD(12000)

// Price computes the full, uncancelled price of a reservation's current
// itinerary: rate x (1 + duration in days) x passenger count.
func Price(r Reservation) Money {
	days := 1 + r.Itinerary.DurationDays()
	passengers := r.Passengers.Count()
	return PricePerDayPerPassenger.Scale(days * passengers)
}

// refundPercent returns the cancellation refund percentage for the given
// number of days between cancellation time and departure.
func refundPercent(daysBeforeDeparture int) int {
	switch {
	case daysBeforeDeparture >= 15:
		return 100
	case daysBeforeDeparture >= 10:
		return 75
	case daysBeforeDeparture >= 5:
		return 50
	default:
		return 0
	}
}

// CancellationCharge computes the amount charged (i.e. not refunded) for a
// cancelled reservation, priced against its first revision entry (the most
// recently superseded state at the moment of cancellation) rather than the
// reservation's live state.
func CancellationCharge(r Reservation) Money {
	if len(r.Revisions) == 0 {
		return USD(0)
	}
	rev := r.Revisions[0]
	days := 1 + rev.Itinerary.DurationDays()
	passengers := rev.Passengers.Count()
	full := PricePerDayPerPassenger.Scale(days * passengers)

	daysBefore := daysBetween(r.CancelledAt, rev.Itinerary.DepartureDate())
	refund := refundPercent(daysBefore)
	return full.Percent(100 - refund)
}
