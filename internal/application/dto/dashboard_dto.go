package dto

import "github.com/shopspring/decimal"

// DashboardResponse respuesta de GET /api/dashboard.
// Importes redondeados a 2 decimales; los desgloses van de mayor a menor.
type DashboardResponse struct {
	Period             string             `json:"period"` // today | week | month | all | range
	Range              *PeriodDTO         `json:"range,omitempty"`
	Totals             TotalsDTO          `json:"totals"`
	SalesByChannel     []ChannelTotalDTO  `json:"salesByChannel"`
	ExpensesByCategory []CategoryTotalDTO `json:"expensesByCategory"`
	RecentSales        []SaleResponse     `json:"recentSales"`
	RecentExpenses     []ExpenseResponse  `json:"recentExpenses"`
}

// PeriodDTO límites inclusivos del período (YYYY-MM-DD).
type PeriodDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TotalsDTO resumen financiero del período.
type TotalsDTO struct {
	Sales     decimal.Decimal `json:"sales"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetProfit decimal.Decimal `json:"netProfit"` // sales - expenses, puede ser negativo
}

// ChannelTotalDTO total de ventas de un canal.
type ChannelTotalDTO struct {
	Channel string          `json:"channel"`
	Total   decimal.Decimal `json:"total"`
}

// CategoryTotalDTO total de gastos de una categoría.
type CategoryTotalDTO struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// DashboardQuery parámetros de GET /api/dashboard.
type DashboardQuery struct {
	Period string `query:"period"` // vacío = today
	Start  string `query:"start"`
	End    string `query:"end"`
}
