package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/sales-insights/internal/application/charts"
	"github.com/jhoicas/sales-insights/internal/domain/costing"
	"github.com/jhoicas/sales-insights/internal/domain/repository"
	"github.com/jhoicas/sales-insights/internal/infrastructure/backoffice"
	"github.com/jhoicas/sales-insights/internal/infrastructure/cache"
	"github.com/jhoicas/sales-insights/internal/infrastructure/calendar"
	"github.com/jhoicas/sales-insights/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/sales-insights/internal/interfaces/http"
	"github.com/jhoicas/sales-insights/pkg/config"
	"github.com/jhoicas/sales-insights/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("sales_source", cfg.Sales.Source).
		Msg("iniciando aplicación")

	loc, err := calendar.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("zona horaria inválida")
	}
	cal := calendar.New(loc)

	ctx := context.Background()

	// Fuente de ventas: API REST del back-office o lectura directa de su base.
	var source repository.SalesSource
	switch cfg.Sales.Source {
	case config.SourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		source = postgres.NewSalesRepository(pool)
	default:
		source = backoffice.NewClient(backoffice.Config{
			BaseURL:  cfg.Backoffice.BaseURL,
			Token:    cfg.Backoffice.Token,
			PageSize: cfg.Backoffice.PageSize,
			MaxPages: cfg.Backoffice.MaxPages,
			Timeout:  cfg.Backoffice.Timeout,
		})
	}

	// Caché Redis opcional: si no responde se arranca sin ella.
	if cfg.Cache.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Cache)
		if err != nil {
			log.Warn().Err(err).Msg("caché Redis deshabilitada")
		} else {
			defer rdb.Close()
			source = cache.NewSalesCache(source, rdb, cfg.Cache.TTL, log)
		}
	}

	clock := func() time.Time { return time.Now().In(loc) }
	chartsUC := charts.NewUseCase(source, cal, costing.NewResolver(cfg.Costing.DefaultCostPerKg), clock, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.HTTP.SwaggerFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Sales Insights API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ChartsUC:  chartsUC,
		JWTSecret: cfg.JWT.Secret,
		JWTIssuer: cfg.JWT.Issuer,
		Logger:    log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
