package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportTypeWeekly tipo de reporte del envío semanal.
const ReportTypeWeekly = "weekly"

// ReportRecord fila de auditoría de rapports_history. Solo se inserta; nunca se modifica ni se borra.
type ReportRecord struct {
	ID            int64
	ReportType    string
	PeriodStart   time.Time
	PeriodEnd     time.Time
	TotalSales    decimal.Decimal
	TotalExpenses decimal.Decimal
	GeneratedAt   time.Time
}
