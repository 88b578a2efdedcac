package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpensePaymentMethod medio de pago de una dépense.
type ExpensePaymentMethod string

const (
	ExpensePaymentCard         ExpensePaymentMethod = "card"
	ExpensePaymentCash         ExpensePaymentMethod = "cash"
	ExpensePaymentBankTransfer ExpensePaymentMethod = "bank_transfer"
	ExpensePaymentCheck        ExpensePaymentMethod = "check"

	DefaultExpensePaymentMethod = ExpensePaymentCard
)

// Valid indica si el medio de pago es uno de los admitidos.
func (m ExpensePaymentMethod) Valid() bool {
	switch m {
	case ExpensePaymentCard, ExpensePaymentCash, ExpensePaymentBankTransfer, ExpensePaymentCheck:
		return true
	}
	return false
}

// ExpenseCategories categorías sugeridas al cargar una dépense. La categoría es texto libre.
func ExpenseCategories() []string {
	return []string{"Food", "Beverages", "Payroll", "Rent", "Supplies", "Energy", "Maintenance", "Marketing", "Other"}
}

// Expense representa una dépense del restaurante.
type Expense struct {
	ID            int64
	Date          time.Time
	Category      string
	Supplier      string
	Amount        decimal.Decimal
	PaymentMethod ExpensePaymentMethod
	Urgent        bool
	ReceiptURL    string // justificante almacenado fuera de la base
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
