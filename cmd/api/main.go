package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/caisse-api/docs"
	appanalytics "github.com/jhoicas/caisse-api/internal/application/analytics"
	"github.com/jhoicas/caisse-api/internal/application/report"
	"github.com/jhoicas/caisse-api/internal/application/usecase"
	"github.com/jhoicas/caisse-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/caisse-api/internal/infrastructure/pdf"
	"github.com/jhoicas/caisse-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/caisse-api/internal/interfaces/http"
	"github.com/jhoicas/caisse-api/pkg/config"
	"github.com/jhoicas/caisse-api/pkg/logger"
)

// @title						Caisse API
// @version					1.0
// @description				Recettes, dépenses, tableau de bord et récapitulatif hebdomadaire d'un restaurant.
// @BasePath					/
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
// @securityDefinitions.apikey	CronSecret
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	if err := cfg.Validate(); err != nil {
		if cfg.App.Env == "production" {
			log.Fatal().Err(err).Msg("configuración inválida")
		}
		log.Warn().Err(err).Msg("configuración incompleta")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("timezone", cfg.App.Timezone).
		Str("report_channel", cfg.Report.Channel).
		Bool("auth", cfg.Auth.Enabled()).
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// "Hoy" es el del restaurante, no el del servidor
	loc := cfg.App.Location()
	clock := func() time.Time { return time.Now().In(loc) }

	saleRepo := postgres.NewSaleRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	ledgerRepo := postgres.NewLedgerQueryRepository(pool)
	historyRepo := postgres.NewReportHistoryRepository(pool)

	saleUC := usecase.NewSaleUseCase(saleRepo, clock)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, clock)
	categoryUC := usecase.NewCategoryUseCase(postgres.NewCategoryRepository(pool))

	engine := appanalytics.NewEngine(ledgerRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(engine, clock)

	notifier, closeNotifier, err := notify.FromConfig(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("notificador del reporte")
	}
	defer func() {
		if err := closeNotifier(); err != nil {
			log.Warn().Err(err).Msg("cerrar notificador")
		}
	}()

	builder := report.NewBuilder(cfg.Report.Locale, cfg.Report.RestaurantName)
	pdfGenerator := infrapdf.NewReportPDFGenerator(builder)
	dispatcher := report.NewDispatcher(notifier, historyRepo, cfg.Report.From, cfg.Report.Recipients, clock)
	weeklyUC := report.NewWeeklyReportUseCase(engine, builder, pdfGenerator, dispatcher, clock)
	historyUC := report.NewHistoryUseCase(historyRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // el envío del reporte puede tardar
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Caisse API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SaleUC:      saleUC,
		ExpenseUC:   expenseUC,
		CategoryUC:  categoryUC,
		DashboardUC: dashboardUC,
		WeeklyUC:    weeklyUC,
		HistoryUC:   historyUC,
		JWTSecret:   cfg.Auth.Secret,
		JWTIssuer:   cfg.Auth.Issuer,
		CronSecret:  cfg.Cron.Secret,
		Log:         log,
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
