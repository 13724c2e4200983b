package main

import (
	"catalog/app/category"
	"catalog/app/product"
	"catalog/infra/postgres"
	"catalog/infra/rabbitmq"
	"catalog/internal/middleware"
	"catalog/pkg/assets"
	"catalog/pkg/config"
	"catalog/pkg/events"
	"catalog/pkg/httperror"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Request any
type Response any

type HandlerInterface[R Request, Res Response] interface {
	Handle(ctx context.Context, req *R) (*Res, error)
}

func handle[R Request, Res Response](handler HandlerInterface[R, Res]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req R

		if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
			return writeError(c, httperror.BadRequest(
				"request.invalid_body",
				"Invalid body",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.ParamsParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_path_params",
				"Invalid path params",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.QueryParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_query_params",
				"Invalid query params",
				fiber.Map{"error": err.Error()},
			))
		}

		ctx := c.UserContext()

		res, err := handler.Handle(ctx, &req)
		if err != nil {
			return writeError(c, err)
		}

		return c.JSON(res)
	}
}

func main() {
	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	appConfig := config.Read()
	zap.L().Info("app starting...")
	zap.L().Info("app config", zap.Any("appConfig", appConfig))

	app := fiber.New(fiber.Config{
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Concurrency:  256 * 1024,
	})

	app.Use(middleware.NewRequestContextMiddleware())

	pgRepository := postgres.NewPgRepository(
		appConfig.PostgresHost,
		appConfig.PostgresDatabase,
		appConfig.PostgresUsername,
		appConfig.PostgresPassword,
		appConfig.PostgresPort,
		appConfig.NameMatchCaseInsensitive,
	)

	if err := pgRepository.RunMigrations("migrations"); err != nil {
		zap.L().Fatal("Failed to run migrations", zap.Error(err))
	}

	assetStore := assets.NewS3Store(appConfig)

	var eventPublisher events.Publisher
	if appConfig.RabbitMQURL != "" {
		publisher, err := rabbitmq.NewRabbitMQPublisher(appConfig.RabbitMQURL, appConfig.ServiceName)
		if err != nil {
			zap.L().Warn("Event publishing disabled, RabbitMQ unavailable", zap.Error(err))
		} else {
			eventPublisher = publisher
		}
	}

	listProductsHandler := product.NewListProductsHandler(pgRepository)
	getProductHandler := product.NewGetProductHandler(pgRepository)
	createProductHandler := product.NewCreateProductHandler(pgRepository, assetStore, eventPublisher)
	updateProductHandler := product.NewUpdateProductHandler(pgRepository, assetStore, eventPublisher)
	deleteProductHandler := product.NewDeleteProductHandler(pgRepository, eventPublisher)
	getCategoriesHandler := category.NewGetCategoriesHandler(pgRepository)

	publicRoutes := app.Group("/api/v1")
	publicRoutes.Get("/products", handle[product.ListProductsRequest, product.ListProductsResponse](listProductsHandler))
	publicRoutes.Get("/products/:id", handle[product.GetProductRequest, product.GetProductResponse](getProductHandler))
	publicRoutes.Post("/products", handle[product.CreateProductRequest, product.CreateProductResponse](createProductHandler))
	publicRoutes.Put("/products/:id", handle[product.UpdateProductRequest, product.UpdateProductResponse](updateProductHandler))
	publicRoutes.Delete("/products/:id", handle[product.DeleteProductRequest, product.DeleteProductResponse](deleteProductHandler))
	publicRoutes.Get("/categories", handle[category.GetCategoriesRequest, category.GetCategoriesResponse](getCategoriesHandler))

	// Start server in a goroutine
	go func() {
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", appConfig.Port)); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", appConfig.Port))

	gracefulShutdown(app, pgRepository, eventPublisher)
}

func gracefulShutdown(app *fiber.App, pgRepository *postgres.PgRepository, eventPublisher events.Publisher) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Wait for shutdown signal
	<-sigChan
	zap.L().Info("Shutting down server...")

	// Shutdown with 5 second timeout
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	if eventPublisher != nil {
		if err := eventPublisher.Close(); err != nil {
			zap.L().Error("Error closing event publisher", zap.Error(err))
		}
	}

	if err := pgRepository.Close(); err != nil {
		zap.L().Error("Error closing repository", zap.Error(err))
	}

	zap.L().Info("Server gracefully stopped")
}

func writeError(c *fiber.Ctx, err error) error {
	var httpErr *httperror.Error
	if errors.As(err, &httpErr) {
		payload := fiber.Map{
			"code":    httpErr.Code,
			"message": httpErr.Message,
		}

		if httpErr.Details != nil {
			payload["details"] = httpErr.Details
		}

		if httpErr.Status >= fiber.StatusInternalServerError {
			zap.L().Error("Handler returned server error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		} else {
			zap.L().Warn("Handler returned client error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		}

		return c.Status(httpErr.Status).JSON(payload)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		zap.L().Warn("Fiber validation error", zap.String("message", fiberErr.Message), zap.Error(err))
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"code":    "request.invalid",
			"message": fiberErr.Message,
		})
	}

	zap.L().Error("Unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"code":    "internal_server_error",
		"message": "Internal server error.",
	})
}
