package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRequest entrada para crear o reemplazar una recette (POST y PUT llevan el conjunto completo).
type SaleRequest struct {
	Date          string           `json:"date"` // YYYY-MM-DD; vacío = hoy
	Channel       string           `json:"channel" validate:"required,oneof=lunch dinner takeout"`
	Amount        *decimal.Decimal `json:"amount" validate:"required,gte=0"`
	PaymentMethod string           `json:"payment_method"` // vacío = cash
	Comment       string           `json:"comment"`
}

// SaleResponse salida de una recette.
type SaleResponse struct {
	ID            int64           `json:"id"`
	Date          string          `json:"date"`
	Channel       string          `json:"channel"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Comment       string          `json:"comment"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SaleListQuery filtros de GET /api/sales.
type SaleListQuery struct {
	Date    string `query:"date"`
	Channel string `query:"channel"`
	Period  string `query:"period"`
	Start   string `query:"start"`
	End     string `query:"end"`
}

// ExpenseRequest entrada para crear o reemplazar una dépense.
type ExpenseRequest struct {
	Date          string           `json:"date"`
	Category      string           `json:"category" validate:"required,max=50"`
	Supplier      string           `json:"supplier" validate:"max=100"`
	Amount        *decimal.Decimal `json:"amount" validate:"required,gte=0"`
	PaymentMethod string           `json:"payment_method"` // vacío = card
	Urgent        bool             `json:"urgent"`
	ReceiptURL    string           `json:"receipt_url"`
}

// ExpenseResponse salida de una dépense.
type ExpenseResponse struct {
	ID            int64           `json:"id"`
	Date          string          `json:"date"`
	Category      string          `json:"category"`
	Supplier      string          `json:"supplier"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Urgent        bool            `json:"urgent"`
	ReceiptURL    string          `json:"receipt_url"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ExpenseListQuery filtros de GET /api/expenses.
type ExpenseListQuery struct {
	Date     string `query:"date"`
	Category string `query:"category"`
	Urgent   string `query:"urgent"` // "true" | "false" | vacío
	Period   string `query:"period"`
	Start    string `query:"start"`
	End      string `query:"end"`
}

// CategoryResponse categoría ofrecida en el formulario de gastos.
type CategoryResponse struct {
	Name      string `json:"name"`
	Suggested bool   `json:"suggested"`
	Uses      int    `json:"uses"`
}
