package dto

import "github.com/jhoicas/caisse-api/internal/domain/entity"

const dateLayout = "2006-01-02"

// NewSaleResponse convierte la entidad en su representación JSON.
func NewSaleResponse(s *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		Date:          s.Date.Format(dateLayout),
		Channel:       string(s.Channel),
		Amount:        s.Amount,
		PaymentMethod: string(s.PaymentMethod),
		Comment:       s.Comment,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// NewSaleResponses convierte una lista; nunca devuelve nil para que el JSON sea [].
func NewSaleResponses(list []*entity.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, NewSaleResponse(s))
	}
	return out
}

// NewExpenseResponse convierte la entidad en su representación JSON.
func NewExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		Date:          e.Date.Format(dateLayout),
		Category:      e.Category,
		Supplier:      e.Supplier,
		Amount:        e.Amount,
		PaymentMethod: string(e.PaymentMethod),
		Urgent:        e.Urgent,
		ReceiptURL:    e.ReceiptURL,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// NewExpenseResponses convierte una lista; nunca devuelve nil.
func NewExpenseResponses(list []*entity.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, NewExpenseResponse(e))
	}
	return out
}

// NewReportHistoryItem convierte una fila de rapports_history.
func NewReportHistoryItem(r *entity.ReportRecord) ReportHistoryItemDTO {
	return ReportHistoryItemDTO{
		ID:            r.ID,
		ReportType:    r.ReportType,
		PeriodStart:   r.PeriodStart.Format(dateLayout),
		PeriodEnd:     r.PeriodEnd.Format(dateLayout),
		TotalSales:    r.TotalSales.Round(2),
		TotalExpenses: r.TotalExpenses.Round(2),
		GeneratedAt:   r.GeneratedAt,
	}
}
