package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/caisse-api/internal/application/dto"
	"github.com/jhoicas/caisse-api/internal/application/report"
	"github.com/jhoicas/caisse-api/pkg/logger"
)

// ReportHandler expone el envío semanal (para el planificador) y el historial de envíos.
type ReportHandler struct {
	weekly  *report.WeeklyReportUseCase
	history *report.HistoryUseCase
	log     *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(weekly *report.WeeklyReportUseCase, history *report.HistoryUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{weekly: weekly, history: history, log: log}
}

// WeeklyReport godoc
// @Summary      Generar y enviar el reporte semanal
// @Description  Agrega los últimos 7 días, envía el reporte a los destinatarios configurados y lo registra en rapports_history.
// @Tags         reports
// @Security     CronSecret
// @Produce      json
// @Success      200  {object}  dto.WeeklyReportResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/cron/weekly-report [get]
func (h *ReportHandler) WeeklyReport(c *fiber.Ctx) error {
	out, err := h.weekly.Run(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().
		Str("run_id", out.RunID).
		Int64("record_id", out.RecordID).
		Str("period_start", out.Report.PeriodStart).
		Str("period_end", out.Report.PeriodEnd).
		Msg("reporte semanal enviado")
	return c.JSON(dto.WeeklyReportResponse{
		Success:  true,
		Message:  "reporte semanal enviado",
		RunID:    out.RunID,
		RecordID: out.RecordID,
		SentAt:   out.SentAt,
		Data:     out.Report,
	})
}

// History godoc
// @Summary      Historial de reportes enviados
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de filas"  default(20)
// @Success      200  {array}   dto.ReportHistoryItemDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/history [get]
func (h *ReportHandler) History(c *fiber.Ctx) error {
	out, err := h.history.List(c.UserContext(), c.QueryInt("limit", report.DefaultHistoryLimit))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
