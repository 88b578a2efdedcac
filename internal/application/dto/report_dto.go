package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportDTO reporte financiero construido para un período (cuerpo del envío semanal).
type ReportDTO struct {
	Type               string          `json:"type"`
	PeriodStart        string          `json:"period_start"`
	PeriodEnd          string          `json:"period_end"`
	PeriodLabel        string          `json:"period_label"` // ej: "11/10/2026 au 18/10/2026"
	Totals             TotalsDTO       `json:"totals"`
	SalesByChannel     []ReportLineDTO `json:"sales_by_channel"`
	ExpensesByCategory []ReportLineDTO `json:"expenses_by_category"`
}

// ReportLineDTO fila de un desglose: etiqueta original (canal o categoría) e importe redondeado.
type ReportLineDTO struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// WeeklyReportResponse respuesta de GET /api/cron/weekly-report.
type WeeklyReportResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	RunID    string    `json:"run_id"`
	RecordID int64     `json:"record_id"`
	SentAt   time.Time `json:"sent_at"`
	Data     ReportDTO `json:"data"`
}

// ReportHistoryItemDTO fila de rapports_history.
type ReportHistoryItemDTO struct {
	ID            int64           `json:"id"`
	ReportType    string          `json:"report_type"`
	PeriodStart   string          `json:"period_start"`
	PeriodEnd     string          `json:"period_end"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	GeneratedAt   time.Time       `json:"generated_at"`
}
