// Package projection maintains the Postgres read models consumed by
// reporting and dashboard queries: published journeys, flight availability
// by month, and a point-in-time operations snapshot.
package projection

import (
	"time"

	"gorm.io/gorm"
)

// JourneyRow is the Journeys projection table.
type JourneyRow struct {
	ID        string `gorm:"primaryKey"`
	Name      string
	Segments  int
	CreatedAt time.Time
}

// FlightAvailabilityRow is the Availability-by-month projection table.
type FlightAvailabilityRow struct {
	FlightID       string `gorm:"primaryKey"`
	Month          string `gorm:"index"`
	SeatsAvailable int
	UpdatedAt      time.Time
}

// DashboardSnapshotRow is a point-in-time rollup used by the live dashboard.
type DashboardSnapshotRow struct {
	ID                   uint `gorm:"primaryKey"`
	TakenAt              time.Time
	ConfirmedReservations int
	CancelledReservations int
	ActiveFlights         int
}

// Store wraps the gorm.DB handle used to maintain these tables.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) UpsertJourney(row JourneyRow) error {
	return s.db.Save(&row).Error
}

func (s *Store) UpsertFlightAvailability(row FlightAvailabilityRow) error {
	return s.db.Where("flight_id = ? AND month = ?", row.FlightID, row.Month).
		Assign(row).
		FirstOrCreate(&FlightAvailabilityRow{}).Error
}

func (s *Store) RecordSnapshot(row DashboardSnapshotRow) error {
	return s.db.Create(&row).Error
}

// ListJourneys returns published journeys ordered newest first, for the
// read-model listing endpoint.
func (s *Store) ListJourneys(limit int) ([]JourneyRow, error) {
	var rows []JourneyRow
	err := s.db.Order("created_at desc").Limit(limit).Find(&rows).Error
	return rows, err
}

// LatestSnapshot returns the most recently recorded dashboard snapshot, if
// any.
func (s *Store) LatestSnapshot() (*DashboardSnapshotRow, error) {
	var row DashboardSnapshotRow
	err := s.db.Order("taken_at desc").First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
