// Comando weekly-report: genera y envía el reporte semanal una vez (cron del sistema o job).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	appanalytics "github.com/jhoicas/caisse-api/internal/application/analytics"
	"github.com/jhoicas/caisse-api/internal/application/report"
	"github.com/jhoicas/caisse-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/caisse-api/internal/infrastructure/pdf"
	"github.com/jhoicas/caisse-api/internal/infrastructure/postgres"
	"github.com/jhoicas/caisse-api/pkg/config"
	"github.com/jhoicas/caisse-api/pkg/logger"
)

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("reporte semanal")
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	notifier, closeNotifier, err := notify.FromConfig(cfg, log)
	if err != nil {
		return err
	}
	defer closeNotifier()

	loc := cfg.App.Location()
	clock := func() time.Time { return time.Now().In(loc) }

	historyRepo := postgres.NewReportHistoryRepository(pool)
	engine := appanalytics.NewEngine(postgres.NewLedgerQueryRepository(pool))
	builder := report.NewBuilder(cfg.Report.Locale, cfg.Report.RestaurantName)
	dispatcher := report.NewDispatcher(notifier, historyRepo, cfg.Report.From, cfg.Report.Recipients, clock)
	weeklyUC := report.NewWeeklyReportUseCase(engine, builder, infrapdf.NewReportPDFGenerator(builder), dispatcher, clock)

	out, err := weeklyUC.Run(ctx)
	if err != nil {
		return err
	}
	log.Info().
		Str("run_id", out.RunID).
		Int64("record_id", out.RecordID).
		Str("period", out.Report.PeriodLabel).
		Msg("reporte semanal enviado")
	return nil
}
