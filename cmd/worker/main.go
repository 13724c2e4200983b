package main

import (
	"catalog/infra/rabbitmq"
	"catalog/internal/consumers"
	"catalog/pkg/assets"
	"catalog/pkg/config"
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	zap.L().Info("Catalog Worker Service starting...")

	appConfig := config.Read()
	zap.L().Info("Worker config loaded",
		zap.String("serviceName", appConfig.ServiceName),
		zap.String("rabbitMQURL", appConfig.RabbitMQURL),
	)

	if appConfig.RabbitMQURL == "" {
		zap.L().Fatal("RABBITMQ_URL is required for worker service")
	}

	assetStore := assets.NewS3Store(appConfig)

	cleanupHandler := consumers.NewImageCleanupHandler(
		assetStore,
		zap.L(),
	)

	// Reclaims image blobs the synchronous delete path leaves behind.
	cleanupConsumerConfig := rabbitmq.ConsumerConfig{
		Exchange:      "catalog.product",
		QueueName:     "catalog.product.deleted.v1",
		RoutingKeys:   []string{"product.deleted.v1"},
		ServiceName:   appConfig.ServiceName,
		PrefetchCount: 10,
	}

	consumer, err := rabbitmq.NewConsumer(appConfig.RabbitMQURL, cleanupConsumerConfig)
	if err != nil {
		zap.L().Fatal("Failed to create consumer", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := consumer.Consume(ctx, cleanupHandler.HandleEvent); err != nil && ctx.Err() == nil {
			zap.L().Error("Consumer stopped unexpectedly", zap.Error(err))
			stop()
		}
	}()

	zap.L().Info("Worker started, waiting for catalog events...")

	<-ctx.Done()
	zap.L().Info("Shutting down worker...")

	if err := consumer.Close(); err != nil {
		zap.L().Error("Error closing consumer", zap.Error(err))
	}

	zap.L().Info("Worker gracefully stopped")
}
