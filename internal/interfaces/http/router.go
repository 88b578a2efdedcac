package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/caisse-api/internal/application/analytics"
	"github.com/jhoicas/caisse-api/internal/application/report"
	"github.com/jhoicas/caisse-api/internal/application/usecase"
	"github.com/jhoicas/caisse-api/pkg/jwt"
	"github.com/jhoicas/caisse-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SaleUC      *usecase.SaleUseCase
	ExpenseUC   *usecase.ExpenseUseCase
	CategoryUC  *usecase.CategoryUseCase
	DashboardUC *appanalytics.DashboardUseCase
	WeeklyUC    *report.WeeklyReportUseCase
	HistoryUC   *report.HistoryUseCase
	JWTSecret   string // vacío = API abierta
	JWTIssuer   string
	CronSecret  string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Cron (Bearer CRON_SECRET, fuera del JWT de la API)
	reportHandler := NewReportHandler(deps.WeeklyUC, deps.HistoryUC, deps.Log)
	api.Get("/cron/weekly-report", CronAuth(deps.CronSecret), reportHandler.WeeklyReport)

	// Rutas protegidas cuando AUTH_JWT_SECRET está definido
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	// Borrar e historial: solo gerente. Con la API abierta no hay roles que comprobar.
	managerOnly := RequireRole(jwt.RoleManager)
	if deps.JWTSecret == "" {
		managerOnly = func(c *fiber.Ctx) error { return c.Next() }
	}

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Log)
	protected.Get("/dashboard", dashboardHandler.Get)

	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.Log)
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Create)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Put("/:id", saleHandler.Update)
	sales.Delete("/:id", managerOnly, saleHandler.Delete)

	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC, deps.Log)
	expenses.Get("/", expenseHandler.List)
	expenses.Post("/", expenseHandler.Create)
	// antes de /:id para que "categories" no se lea como id
	expenses.Get("/categories", NewCategoryHandler(deps.CategoryUC, deps.Log).List)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", managerOnly, expenseHandler.Delete)

	protected.Get("/reports/history", managerOnly, reportHandler.History)
}
