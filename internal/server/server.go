// Package server arma la aplicación Fiber: middlewares, manejo de errores y rutas.
package server

import (
	"errors"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/arqueo"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/audit"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/auth"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/cache"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/cashflow"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/catalog"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/config"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/dashboard"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/database"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/expense"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/metrics"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/orders"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/payments"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/shifts"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/tables"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const msgUnexpected = "Error interno del servidor"

// New construye la app con todas las rutas. store puede ser un cache
// deshabilitado.
func New(cfg *config.Config, store *cache.Cache) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "standburg",
		ErrorHandler: errorHandler(cfg),
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}))
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(metrics.Middleware())
	app.Use(RequestLogger())

	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// Públicas
	api.Get("/health", healthHandler())
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/registrar-admin", auth.RegisterAdminHandler())
	api.Post("/pedidos/autoservicio", orders.CreateSelfServiceOrderHandler())

	// Protegidas
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Catálogo
	protected.Get("/categorias", catalog.ListCategoriesHandler(store))
	protected.Post("/categorias", catalog.CreateCategoryHandler(store))
	protected.Get("/categorias/:id", catalog.GetCategoryHandler())
	protected.Get("/categorias/:id/productos", catalog.ListCategoryProductsHandler())
	protected.Put("/categorias/:id", catalog.UpdateCategoryHandler(store))
	protected.Delete("/categorias/:id", catalog.DeleteCategoryHandler(store))

	protected.Get("/productos", catalog.ListProductsHandler(store))
	protected.Post("/productos", catalog.CreateProductHandler(store))
	protected.Post("/productos/importar", catalog.ImportProductsHandler(store))
	protected.Get("/productos/:id", catalog.GetProductHandler())
	protected.Put("/productos/:id", catalog.UpdateProductHandler(store))
	protected.Delete("/productos/:id", catalog.DeleteProductHandler(store))

	// Mesas
	protected.Get("/mesas", tables.ListTablesHandler())
	protected.Post("/mesas", tables.CreateTableHandler())
	protected.Get("/mesas/:id", tables.GetTableHandler())
	protected.Put("/mesas/:id", tables.UpdateTableHandler())
	protected.Delete("/mesas/:id", tables.DeleteTableHandler())

	// Pedidos
	protected.Get("/pedidos", orders.ListOrdersHandler())
	protected.Post("/pedidos", orders.CreateOrderHandler())
	protected.Get("/pedidos/:id", orders.GetOrderHandler())
	protected.Put("/pedidos/:id/estado", orders.UpdateOrderStateHandler(cfg))
	protected.Delete("/pedidos/:id", orders.DeleteOrderHandler())

	// Pagos
	protected.Get("/pagos", payments.ListPaymentsHandler())
	protected.Post("/pagos", payments.CreatePaymentHandler())
	protected.Get("/pagos/:id", payments.GetPaymentHandler())
	protected.Delete("/pagos/:id", payments.DeletePaymentHandler())

	// Turnos, las rutas fijas van antes de /:id
	protected.Get("/turnos", shifts.ListShiftsHandler())
	protected.Get("/turnos/activo", shifts.ActiveShiftHandler())
	protected.Post("/turnos/abrir", shifts.OpenShiftHandler())
	protected.Get("/turnos/:id", shifts.GetShiftHandler())
	protected.Put("/turnos/:id/cerrar", shifts.CloseShiftHandler())

	// Arqueo
	protected.Get("/arqueo/activo", arqueo.ActiveArqueoHandler())
	protected.Get("/arqueo/historial", arqueo.HistoryHandler())
	protected.Post("/arqueo/abrir", arqueo.OpenArqueoHandler())
	protected.Put("/arqueo/cerrar", arqueo.CloseArqueoHandler())
	protected.Get("/arqueo/:id", arqueo.GetArqueoHandler())

	// Caja
	protected.Get("/movimientos-caja", cashflow.ListCashMovementsHandler())
	protected.Post("/movimientos-caja", cashflow.CreateCashMovementHandler())
	protected.Get("/movimientos-caja/:id", cashflow.GetCashMovementHandler())
	protected.Get("/resumen-financiero", cashflow.GetFinancialSummaryHandler())

	// Gastos
	protected.Get("/gastos", expense.ListExpensesHandler())
	protected.Post("/gastos", expense.CreateExpenseHandler())
	protected.Get("/gastos/resumen-mensual", expense.MonthlySummaryHandler())
	protected.Get("/gastos/:id", expense.GetExpenseHandler())
	protected.Put("/gastos/:id", expense.UpdateExpenseHandler())
	protected.Delete("/gastos/:id", expense.DeleteExpenseHandler())

	protected.Get("/dashboard/ventas", dashboard.SalesChartHandler())
	protected.Get("/auditoria", audit.ListAuditLogsHandler())

	return app
}

// errorHandler es el único lugar que escribe cuerpos de error.
func errorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := apperr.StatusOf(err)
		msg := err.Error()

		var appErr *apperr.Error
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr) && appErr.Kind != apperr.KindInternal:
			msg = appErr.Message
		case errors.As(err, &fiberErr):
			msg = fiberErr.Message
		default:
			zap.L().Error("Error no controlado",
				zap.Error(err),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Any("request_id", c.Locals(requestid.ConfigDefault.ContextKey)),
			)
			if cfg.IsProduction() {
				msg = msgUnexpected
			}
		}

		return c.Status(status).JSON(fiber.Map{"message": msg})
	}
}

// GET /api/health
func healthHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.Ping(database.DB); err != nil {
			zap.L().Warn("Health check sin base de datos", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "degradado",
				"database": "sin conexión",
			})
		}
		return c.JSON(fiber.Map{"status": "ok", "database": "ok"})
	}
}
