package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/caisse-api/internal/domain/entity"
	"github.com/jhoicas/caisse-api/internal/domain/filter"
)

// SaleRepository define el puerto de persistencia para las recettes.
// GetByID, Update y Delete devuelven domain.ErrNotFound si el id no existe.
type SaleRepository interface {
	// Create inserta la venta y completa ID, CreatedAt y UpdatedAt asignados por el almacén.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	// Update reemplaza todos los campos editables; CreatedAt no cambia.
	Update(ctx context.Context, sale *entity.Sale) error
	// Delete borra la venta y devuelve la fila eliminada.
	Delete(ctx context.Context, id int64) (*entity.Sale, error)
	List(ctx context.Context, f filter.Set) ([]*entity.Sale, error)
}

// ExpenseRepository define el puerto de persistencia para las dépenses.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id int64) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id int64) (*entity.Expense, error)
	List(ctx context.Context, f filter.Set) ([]*entity.Expense, error)
}

// GroupTotal suma de importes de un grupo (canal o categoría).
type GroupTotal struct {
	Label string
	Total decimal.Decimal
}

// LedgerQueryRepository consultas de solo lectura para la agregación.
// Todas reciben el mismo filter.Set para que totales y desgloses sean coherentes.
type LedgerQueryRepository interface {
	// SumSales devuelve cero si no hay filas.
	SumSales(ctx context.Context, f filter.Set) (decimal.Decimal, error)
	SumExpenses(ctx context.Context, f filter.Set) (decimal.Decimal, error)

	// SalesByChannel agrupa por canal, orden descendente por total; omite totales en cero.
	SalesByChannel(ctx context.Context, f filter.Set) ([]GroupTotal, error)
	ExpensesByCategory(ctx context.Context, f filter.Set) ([]GroupTotal, error)

	// RecentSales devuelve las últimas `limit` filas por created_at DESC, id DESC.
	RecentSales(ctx context.Context, f filter.Set, limit int) ([]*entity.Sale, error)
	RecentExpenses(ctx context.Context, f filter.Set, limit int) ([]*entity.Expense, error)
}

// ReportHistoryRepository tabla de auditoría rapports_history (solo inserción).
type ReportHistoryRepository interface {
	Create(ctx context.Context, rec *entity.ReportRecord) error
	List(ctx context.Context, limit int) ([]*entity.ReportRecord, error)
}
