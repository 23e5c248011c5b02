package app

import (
	"os"

	"github.com/SchlottiP/employee-test/internal/employee"
	"github.com/SchlottiP/employee-test/internal/messaging/kafka"
	"github.com/SchlottiP/employee-test/internal/middleware"
	"github.com/SchlottiP/employee-test/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and registers the employee module.
// Event delivery defaults to a fire-and-forget async Kafka writer;
// EVENT_DELIVERY=outbox swaps in the outbox table drained by cmd/worker,
// and an empty KAFKA_BROKER degrades to a noop publisher.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	if err := gormDB.AutoMigrate(&employee.Employee{}); err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		logger.Warn("redis unavailable, list caching disabled", zap.Error(err))
		rdb = nil
	}

	topic := os.Getenv("KAFKA_TOPIC")

	var publisher employee.EventPublisher
	switch {
	case os.Getenv("KAFKA_BROKER") == "":
		logger.Warn("KAFKA_BROKER not set, lifecycle events disabled")
		publisher = employee.NewNoopEventPublisher()
	case os.Getenv("EVENT_DELIVERY") == "outbox":
		sqlDB, err := gormDB.DB()
		if err != nil {
			return err
		}
		publisher = employee.NewOutboxEventPublisher(kafka.NewOutboxRepository(sqlDB), topic)
		logger.Info("event delivery mode: outbox")
	default:
		writer, err := connection.ConnectKafkaWithRetry(os.Getenv("KAFKA_BROKER"), true, 5)
		if err != nil {
			return err
		}
		publisher = employee.NewKafkaEventPublisher(writer, topic)
		logger.Info("event delivery mode: fire-and-forget")
	}

	employeeRepo := employee.NewRepository(gormDB)
	employeeService := employee.NewService(employeeRepo, publisher, rdb)
	employeeHandler := employee.NewHandler(employeeService)

	router.Use(middleware.RequestID())

	api := router.Group("/api")
	{
		employee.RegisterRoutes(api, employeeHandler, zap.L())
	}

	return nil
}
