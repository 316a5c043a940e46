package domain

// AccommodationId, JourneyId, ReservationId and FlightId are opaque 128-bit
// ids, each a distinct type over Uid so they can't be accidentally swapped.

type AccommodationId struct{ Uid }
type JourneyId struct{ Uid }
type ReservationId struct{ Uid }
type FlightId struct{ Uid }

func NewAccommodationId() AccommodationId { return AccommodationId{NewRandomUid()} }
func NewJourneyId() JourneyId             { return JourneyId{NewRandomUid()} }
func NewReservationId() ReservationId     { return ReservationId{NewRandomUid()} }
func NewFlightId() FlightId               { return FlightId{NewRandomUid()} }

func ParseAccommodationId(s string) (AccommodationId, error) {
	u, err := ParseUid(s)
	return AccommodationId{u}, err
}

func ParseJourneyId(s string) (JourneyId, error) {
	u, err := ParseUid(s)
	return JourneyId{u}, err
}

func ParseReservationId(s string) (ReservationId, error) {
	u, err := ParseUid(s)
	return ReservationId{u}, err
}

func ParseFlightId(s string) (FlightId, error) {
	u, err := ParseUid(s)
	return FlightId{u}, err
}

// AirfieldId is a 4-letter ICAO code, not a Uid.
type AirfieldId string

// AirshipId identifies a scheduling-side airship; also a Uid in spirit but
// kept as a plain string since Scheduling assigns operator-chosen codes.
type AirshipId string
