// Command reservationworker consumes the event bus and drives the
// flight-reservation saga: it turns FlightScheduledV1 into available
// inventory, FlightReservationRequestedV1 into seat reservations, and folds
// the resulting FlightReservedV1/FlightReservationFailedV1 back onto the
// reservation aggregates that requested them.
package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nielsbergsma/blimpco/internal/events"
	"github.com/nielsbergsma/blimpco/internal/platform/config"
	"github.com/nielsbergsma/blimpco/internal/platform/eventbus"
	"github.com/nielsbergsma/blimpco/internal/platform/logging"
	"github.com/nielsbergsma/blimpco/internal/platform/migrate"
	"github.com/nielsbergsma/blimpco/internal/platform/scheduler"
	"github.com/nielsbergsma/blimpco/internal/platform/vault"
	"github.com/nielsbergsma/blimpco/internal/reservation/domain"
	"github.com/nielsbergsma/blimpco/internal/reservation/projection"
	"github.com/nielsbergsma/blimpco/internal/reservation/repository"
	"github.com/nielsbergsma/blimpco/internal/reservation/usecase"
)

type envelope struct {
	Payload json.RawMessage `json:"payload"`
}

func main() {
	cfg := config.Load("reservationworker")

	logger, err := logging.InitGlobal(logging.Config{ServiceName: cfg.ServiceName, Environment: cfg.Environment, Level: cfg.LogLevel})
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal("invalid redis url", zap.Error(err))
	}
	redisClient := redis.NewClient(redisOpts)

	databaseURL := cfg.DatabaseURL
	if cfg.UsesVault() {
		secrets, err := vault.New(cfg.VaultAddr, cfg.VaultToken, cfg.VaultMount)
		if err != nil {
			logger.Fatal("vault client init failed", zap.Error(err))
		}
		if err := secrets.RotateSecrets("reservationworker"); err != nil {
			logger.Fatal("vault secret fetch failed", zap.Error(err))
		}
		if url := secrets.Get("database_url"); url != "" {
			databaseURL = url
		}
	}

	if err := migrate.Run("file://migrations", databaseURL); err != nil {
		logger.Fatal("projection migration failed", zap.Error(err))
	}
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		logger.Fatal("postgres unreachable", zap.Error(err))
	}
	projections := projection.NewStore(db)

	natsConn, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		logger.Fatal("nats unreachable", zap.Error(err))
	}
	defer natsConn.Close()

	destinations := []eventbus.Destination{eventbus.NewNatsDestination(natsConn, "blimpco")}
	publisher := eventbus.NewPublisher(destinations, nil, logger)

	journeys := repository.NewRedisRepository[domain.Journey](redisClient, "journey")
	availability := repository.NewRedisRepository[domain.FlightAvailability](redisClient, "flight_availability")
	reservations := repository.NewRedisRepository[domain.Reservation](redisClient, "reservation")
	useCases := usecase.New(journeys, availability, reservations, eventbus.NewUseCasePublisher(publisher))

	subscribe(natsConn, logger, events.NameFlightScheduledV1, func(payload json.RawMessage) error {
		var e events.FlightScheduledV1
		if err := json.Unmarshal(payload, &e); err != nil {
			return err
		}
		flightID, err := domain.ParseFlightId(e.ID)
		if err != nil {
			return err
		}
		departureAirfield, err := domain.NewAirfieldId(e.Departure.Airfield)
		if err != nil {
			return err
		}
		arrivalAirfield, err := domain.NewAirfieldId(e.Arrival.Airfield)
		if err != nil {
			return err
		}
		route, err := domain.NewFlightRoute(departureAirfield, arrivalAirfield)
		if err != nil {
			return err
		}
		flight, err := domain.NewFlight(flightID, route, e.Departure.Time, e.Arrival.Time, domain.NumberOfSeats(e.Airship.NumberOfSeats))
		if err != nil {
			return err
		}
		return useCases.MakeFlightAvailable(context.Background(), flight)
	})

	subscribe(natsConn, logger, events.NameFlightReservationRequestedV1, func(payload json.RawMessage) error {
		var e events.FlightReservationRequestedV1
		if err := json.Unmarshal(payload, &e); err != nil {
			return err
		}
		reservationID, err := domain.ParseReservationId(e.Reservation.ID)
		if err != nil {
			return err
		}
		flightID, err := domain.ParseFlightId(e.Flight)
		if err != nil {
			return err
		}
		return useCases.ReserveFlight(context.Background(), reservationID, e.Reservation.Version, flightID, e.Seats)
	})

	subscribe(natsConn, logger, events.NameFlightReservedV1, func(payload json.RawMessage) error {
		var e events.FlightReservedV1
		if err := json.Unmarshal(payload, &e); err != nil {
			return err
		}
		return useCases.HandleFlightReserved(context.Background(), e)
	})

	subscribe(natsConn, logger, events.NameFlightReservationFailedV1, func(payload json.RawMessage) error {
		var e events.FlightReservationFailedV1
		if err := json.Unmarshal(payload, &e); err != nil {
			return err
		}
		return useCases.HandleFlightReservationFailed(context.Background(), e)
	})

	subscribe(natsConn, logger, events.NameJourneyPublishedV1, func(payload json.RawMessage) error {
		var e events.JourneyPublishedV1
		if err := json.Unmarshal(payload, &e); err != nil {
			return err
		}
		return projections.UpsertJourney(projection.JourneyRow{
			ID:        e.ID,
			Name:      e.Name,
			Segments:  len(e.Segments),
			CreatedAt: time.Now().UTC(),
		})
	})

	subscribe(natsConn, logger, events.NameFlightAvailabilityChangedV1, func(payload json.RawMessage) error {
		var e events.FlightAvailabilityChangedV1
		if err := json.Unmarshal(payload, &e); err != nil {
			return err
		}
		return projections.UpsertFlightAvailability(projection.FlightAvailabilityRow{
			FlightID:       e.Flight,
			Month:          e.DepartureTime.Format("2006-01"),
			SeatsAvailable: e.SeatsAvailable,
			UpdatedAt:      time.Now().UTC(),
		})
	})

	reconciler := scheduler.NewReconciler(logger)
	if err := reconciler.Schedule("@every 1h", func(ctx context.Context) error {
		return recordDashboardSnapshot(ctx, redisClient, reservations, projections)
	}); err != nil {
		logger.Fatal("failed to schedule dashboard reconciliation", zap.Error(err))
	}
	reconciler.Start()
	defer reconciler.Stop()

	logger.Info("reservationworker subscribed, awaiting events")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")
}

func subscribe(conn *nats.Conn, logger *logging.Logger, eventName string, handle func(json.RawMessage) error) {
	subject := "blimpco." + eventName
	_, err := conn.Subscribe(subject, func(msg *nats.Msg) {
		var env envelope
		if err := json.Unmarshal(msg.Data, &env); err != nil {
			logger.WithError(err).Error("failed to decode event envelope", zap.String("subject", subject))
			return
		}
		if err := handle(env.Payload); err != nil {
			logger.WithError(err).Error("failed to handle event", zap.String("subject", subject))
		}
	})
	if err != nil {
		logger.Fatal("failed to subscribe", zap.String("subject", subject), zap.Error(err))
	}
}

// recordDashboardSnapshot scans the reservation and flight-availability
// keyspaces and rolls them up into a point-in-time snapshot row. A full
// keyspace scan is acceptable at this reconciliation cadence; it also
// catches anything the at-least-once event transports dropped.
func recordDashboardSnapshot(ctx context.Context, client *redis.Client, reservations *repository.RedisRepository[domain.Reservation], store *projection.Store) error {
	confirmed, cancelled, err := countReservations(ctx, client, reservations)
	if err != nil {
		return err
	}

	activeFlights, err := countKeys(ctx, client, "flight_availability:")
	if err != nil {
		return err
	}

	return store.RecordSnapshot(projection.DashboardSnapshotRow{
		TakenAt:               time.Now().UTC(),
		ConfirmedReservations: confirmed,
		CancelledReservations: cancelled,
		ActiveFlights:         activeFlights,
	})
}

func countReservations(ctx context.Context, client *redis.Client, reservations *repository.RedisRepository[domain.Reservation]) (confirmed, cancelled int, err error) {
	var cursor uint64
	for {
		keys, next, scanErr := client.Scan(ctx, cursor, "reservation:*", 100).Result()
		if scanErr != nil {
			return 0, 0, scanErr
		}
		for _, key := range keys {
			id := strings.TrimPrefix(key, "reservation:")
			r, getErr := reservations.Get(ctx, id)
			if getErr != nil || r == nil {
				continue
			}
			if r.Cancelled {
				cancelled++
			} else {
				confirmed++
			}
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return confirmed, cancelled, nil
}

func countKeys(ctx context.Context, client *redis.Client, prefix string) (int, error) {
	count := 0
	var cursor uint64
	for {
		keys, next, err := client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			return 0, err
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return count, nil
}
