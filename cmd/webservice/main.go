package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	_ "time/tzdata"

	"github.com/buildmatpro/proforma-service/config"
	"github.com/buildmatpro/proforma-service/internal/controller"
	circuitbreaker "github.com/buildmatpro/proforma-service/internal/infrastructure/circuit-breaker"
	"github.com/buildmatpro/proforma-service/internal/infrastructure/database/postgres"
	imagegateway "github.com/buildmatpro/proforma-service/internal/infrastructure/image-gateway"
	"github.com/buildmatpro/proforma-service/internal/infrastructure/tracing"
	localmiddleware "github.com/buildmatpro/proforma-service/internal/middleware"
	"github.com/buildmatpro/proforma-service/internal/repository"
	"github.com/buildmatpro/proforma-service/internal/service"
	"github.com/buildmatpro/proforma-service/pkg/response"
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

	traceProvider, err := tracing.InitTracing(config.TracingConfig.CollectorHost)
	if err != nil {
		fmt.Println(err)
	}

	defer func() {
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			fmt.Println(err)
		}
	}()

	tracer := traceProvider.Tracer("proforma-service")

	var productRepo repository.ProductRepository
	switch config.CatalogConfig.Driver {
	case "postgres":
		db, err := postgres.GetDBInstance(config.PostgreSQLConfig.DBUsername, config.PostgreSQLConfig.DBPassword, config.PostgreSQLConfig.DBHost, config.PostgreSQLConfig.DBPort, config.PostgreSQLConfig.DBName)
		if err != nil {
			panic(err)
		}
		productRepo = repository.CreatePostgresProductRepository(db)
	default:
		productRepo, err = repository.CreateInMemoryProductRepository(config.CatalogConfig.Path)
		if err != nil {
			panic(err)
		}
	}

	cb := circuitbreaker.CreateCircuitBreaker("proforma-service")
	geminiClient := imagegateway.CreateGeminiClient(config, cb)

	proformaSvc := service.CreateProformaService(productRepo, geminiClient, config)

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

	controller.CreateProformaController(g, proformaSvc)

	s, err := gocron.NewScheduler()
	if err != nil {
		panic(err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			5*time.Minute,
		),
		gocron.NewTask(
			proformaSvc.EvictIdleSessions,
		),
	)
	if err != nil {
		panic(err)
	}

	s.Start()

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", config.ServicePort)))
}
