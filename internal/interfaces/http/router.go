package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sales-insights/internal/application/charts"
	"github.com/jhoicas/sales-insights/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ChartsUC  *charts.UseCase
	JWTSecret string
	JWTIssuer string
	Logger    *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Todo /api requiere Bearer Token con permiso dashboard:read.
	api := app.Group("/api",
		AuthMiddleware(deps.JWTSecret, deps.JWTIssuer),
		RequirePermission(PermissionDashboardRead),
	)

	chartsHandler := NewChartsHandler(deps.ChartsUC, validator.New(), log)

	chartsGroup := api.Group("/charts")
	chartsGroup.Get("/sales", chartsHandler.Sales)
	chartsGroup.Get("/income", chartsHandler.Income)
	chartsGroup.Get("/channels", chartsHandler.Channels)
	chartsGroup.Get("/categories", chartsHandler.Categories)
	chartsGroup.Get("/summary", chartsHandler.Summary)

	costing := api.Group("/costing")
	costing.Post("/sale", chartsHandler.SaleCosting)
}
