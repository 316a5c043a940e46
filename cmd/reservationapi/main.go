// Command reservationapi serves the Reservation bounded context: journeys,
// flight availability, and passenger reservations.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nielsbergsma/blimpco/internal/platform/config"
	"github.com/nielsbergsma/blimpco/internal/platform/eventbus"
	"github.com/nielsbergsma/blimpco/internal/platform/httpserver"
	"github.com/nielsbergsma/blimpco/internal/platform/logging"
	"github.com/nielsbergsma/blimpco/internal/platform/migrate"
	"github.com/nielsbergsma/blimpco/internal/platform/vault"
	"github.com/nielsbergsma/blimpco/internal/reservation/domain"
	"github.com/nielsbergsma/blimpco/internal/reservation/httpapi"
	"github.com/nielsbergsma/blimpco/internal/reservation/projection"
	"github.com/nielsbergsma/blimpco/internal/reservation/repository"
	"github.com/nielsbergsma/blimpco/internal/reservation/usecase"
)

func main() {
	cfg := config.Load("reservationapi")

	logger, err := logging.InitGlobal(logging.Config{ServiceName: cfg.ServiceName, Environment: cfg.Environment, Level: cfg.LogLevel})
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	jwtSigningKey := cfg.JWTSigningKey
	if cfg.UsesVault() {
		secrets, err := vault.New(cfg.VaultAddr, cfg.VaultToken, cfg.VaultMount)
		if err != nil {
			logger.Fatal("vault client init failed", zap.Error(err))
		}
		if err := secrets.RotateSecrets("reservationapi"); err != nil {
			logger.Fatal("vault secret fetch failed", zap.Error(err))
		}
		if key := secrets.Get("jwt_signing_key"); key != "" {
			jwtSigningKey = key
		}
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal("invalid redis url", zap.Error(err))
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("redis unreachable", zap.Error(err))
	}

	if err := migrate.Run("file://migrations", cfg.DatabaseURL); err != nil {
		logger.Fatal("projection migration failed", zap.Error(err))
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.Fatal("postgres unreachable", zap.Error(err))
	}
	projections := projection.NewStore(db)

	dashboard := eventbus.NewDashboardStream()

	destinations := []eventbus.Destination{}
	natsConn, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		logger.Warn("nats unreachable, continuing without it", zap.Error(err))
	} else {
		destinations = append(destinations, eventbus.NewNatsDestination(natsConn, "blimpco"))
		subscribeDashboard(natsConn, logger, dashboard)
	}
	kafkaDest := eventbus.NewKafkaDestination(cfg.KafkaBrokers, cfg.EventTopic)
	destinations = append(destinations, kafkaDest)
	if cfg.WebhookURL != "" {
		destinations = append(destinations, eventbus.NewWebhookDestination(cfg.WebhookURL))
	}

	publisher := eventbus.NewPublisher(destinations, nil, logger)

	journeys := repository.NewRedisRepository[domain.Journey](redisClient, "journey")
	availability := repository.NewRedisRepository[domain.FlightAvailability](redisClient, "flight_availability")
	reservations := repository.NewRedisRepository[domain.Reservation](redisClient, "reservation")

	useCases := usecase.New(journeys, availability, reservations, eventbus.NewUseCasePublisher(publisher))

	engine := httpserver.NewEngine(logger, cfg.Environment)
	engine.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	engine.GET("/health/ready", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ready"}) })
	engine.GET("/health/live", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "live"}) })
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	engine.GET("/dashboard/stream", gin.WrapF(dashboard.ServeHTTP))
	engine.GET("/dashboard/snapshot", func(c *gin.Context) {
		snapshot, err := projections.LatestSnapshot()
		if err != nil {
			httpserver.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, snapshot)
	})
	engine.GET("/journeys/published", func(c *gin.Context) {
		rows, err := projections.ListJourneys(100)
		if err != nil {
			httpserver.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	})

	apiKey := os.Getenv("API_KEY")
	handlers := httpapi.New(useCases)

	operatorRoutes := engine.Group("/")
	operatorRoutes.Use(httpserver.RequireAPIKey(apiKey))
	handlers.RegisterJourneys(operatorRoutes)

	reservationRoutes := engine.Group("/")
	reservationRoutes.Use(httpserver.RequireBearerToken(jwtSigningKey))
	handlers.RegisterReservations(reservationRoutes)

	server := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: engine}

	go func() {
		logger.Info("reservationapi listening", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// subscribeDashboard fans every published event out to connected dashboard
// websocket clients, read-only: it never commits state, only pushes.
func subscribeDashboard(conn *nats.Conn, logger *logging.Logger, dashboard *eventbus.DashboardStream) {
	_, err := conn.Subscribe("blimpco.>", func(msg *nats.Msg) {
		var env struct {
			Name    string          `json:"event_name"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := json.Unmarshal(msg.Data, &env); err != nil {
			return
		}
		dashboard.Broadcast(env.Name, env.Payload)
	})
	if err != nil {
		logger.Warn("failed to subscribe dashboard stream", zap.Error(err))
	}
}
