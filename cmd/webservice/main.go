package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	_ "time/tzdata"

	"github.com/alimikegami/marketplace-service/config"
	"github.com/alimikegami/marketplace-service/internal/controller"
	circuitbreaker "github.com/alimikegami/marketplace-service/internal/infrastructure/circuit-breaker"
	"github.com/alimikegami/marketplace-service/internal/infrastructure/database/mongodb"
	"github.com/alimikegami/marketplace-service/internal/infrastructure/database/postgres"
	imagestore "github.com/alimikegami/marketplace-service/internal/infrastructure/image-store"
	"github.com/alimikegami/marketplace-service/internal/infrastructure/message-queue/kafka"
	paymentgateway "github.com/alimikegami/marketplace-service/internal/infrastructure/payment-gateway"
	"github.com/alimikegami/marketplace-service/internal/infrastructure/tracing"
	localmiddleware "github.com/alimikegami/marketplace-service/internal/middleware"
	"github.com/alimikegami/marketplace-service/internal/repository"
	"github.com/alimikegami/marketplace-service/internal/service"
	"github.com/alimikegami/marketplace-service/pkg/response"
	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	config := config.CreateNewConfig()

	db, err := postgres.GetDBInstance(config.PostgreSQLConfig.DBUsername, config.PostgreSQLConfig.DBPassword, config.PostgreSQLConfig.DBHost, config.PostgreSQLConfig.DBPort, config.PostgreSQLConfig.DBName)
	if err != nil {
		panic(err)
	}

	if err := postgres.RunMigrations(db, config.PostgreSQLConfig.DBName, config.PostgreSQLConfig.MigrationsPath); err != nil {
		panic(err)
	}

	mongoDB, err := mongodb.ConnectToMongoDB(config.MongoDBConfig.URI, config.MongoDBConfig.DBName)
	if err != nil {
		panic(err)
	}

	kafkaProducer := kafka.CreateKafkaProducer(config)

	paymentGateway := paymentgateway.CreateMidtransGateway(config)

	cb := circuitbreaker.CreateCircuitBreaker("marketplace-service")
	imageStore := imagestore.CreateCloudinaryImageStore(config, cb)

	traceProvider, err := tracing.InitTracing(config.TracingConfig.CollectorHost)
	if err != nil {
		fmt.Println(err)
	}

	defer func() {
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			fmt.Println(err)
		}
	}()

	tracer := traceProvider.Tracer("marketplace-service")

	e := echo.New()
	g := e.Group("/api/v1")

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// span creation and naming
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			// add the context to the request
			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))
	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	e.Use(localmiddleware.Logger)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	userRepo := repository.CreateUserRepository(db)
	productRepo := repository.CreateProductRepository(mongoDB)
	orderRepo := repository.CreateOrderRepository(db)

	authMiddleware := localmiddleware.CreateAuthMiddleware(userRepo, config.JWTSecret)

	userSvc := service.CreateUserService(userRepo, config)
	productSvc := service.CreateProductService(productRepo, imageStore)
	orderSvc := service.CreateOrderService(orderRepo, productRepo, userRepo, paymentGateway, kafkaProducer, config)

	controller.CreateUserController(g, userSvc, authMiddleware.IsLoggedIn, authMiddleware.IsAdmin)
	controller.CreateProductController(g, productSvc, authMiddleware.IsLoggedIn)
	controller.CreateOrderController(g, orderSvc, authMiddleware.IsLoggedIn, authMiddleware.IsAdmin)

	s, err := gocron.NewScheduler()
	if err != nil {
		panic(err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			time.Hour,
		),
		gocron.NewTask(
			func() {
				if err := orderSvc.ReportStaleUnpaidOrders(context.Background()); err != nil {
					log.Error().Err(err).Str("component", "ReportStaleUnpaidOrders").Msg("")
				}
			},
		),
	)
	if err != nil {
		panic(err)
	}

	s.Start()

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", config.ServicePort)))
}
