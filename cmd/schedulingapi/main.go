// Command schedulingapi serves the Scheduling bounded context: airfield,
// airship and flight registration. It is the upstream source of supply
// consumed by the Reservation context over the event bus.
package main

import (
	"context"
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

	"github.com/nielsbergsma/blimpco/internal/platform/config"
	"github.com/nielsbergsma/blimpco/internal/platform/eventbus"
	"github.com/nielsbergsma/blimpco/internal/platform/httpserver"
	"github.com/nielsbergsma/blimpco/internal/platform/logging"
	schedulingdomain "github.com/nielsbergsma/blimpco/internal/scheduling/domain"
	schedulinghttpapi "github.com/nielsbergsma/blimpco/internal/scheduling/httpapi"
	"github.com/nielsbergsma/blimpco/internal/reservation/repository"
	schedulingusecase "github.com/nielsbergsma/blimpco/internal/scheduling/usecase"
)

func main() {
	cfg := config.Load("schedulingapi")

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
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("redis unreachable", zap.Error(err))
	}

	destinations := []eventbus.Destination{}
	natsConn, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		logger.Warn("nats unreachable, continuing without it", zap.Error(err))
	} else {
		destinations = append(destinations, eventbus.NewNatsDestination(natsConn, "blimpco"))
	}
	destinations = append(destinations, eventbus.NewKafkaDestination(cfg.KafkaBrokers, cfg.EventTopic))

	publisher := eventbus.NewPublisher(destinations, nil, logger)

	airfields := repository.NewRedisRepository[schedulingdomain.Airfield](redisClient, "airfield")
	airships := schedulingusecase.NewCachedAirshipRepository(repository.NewRedisRepository[schedulingdomain.Airship](redisClient, "airship"))
	flights := repository.NewRedisRepository[schedulingdomain.Flight](redisClient, "flight")

	useCases := schedulingusecase.New(airfields, airships, flights, eventbus.NewSchedulingUseCasePublisher(publisher))

	engine := httpserver.NewEngine(logger, cfg.Environment)
	engine.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiKey := os.Getenv("API_KEY")
	operatorRoutes := engine.Group("/")
	operatorRoutes.Use(httpserver.RequireAPIKey(apiKey))
	schedulinghttpapi.New(useCases).Register(operatorRoutes)

	server := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: engine}

	go func() {
		logger.Info("schedulingapi listening", zap.String("port", cfg.HTTPPort))
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
