package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/caisse-api/internal/domain/entity"
	"github.com/jhoicas/caisse-api/internal/domain/filter"
	"github.com/jhoicas/caisse-api/internal/domain/repository"
)

var _ repository.LedgerQueryRepository = (*LedgerQueryRepo)(nil)

// LedgerQueryRepo consultas de solo lectura del motor de agregación. Todas reciben el mismo
// filter.Set, de modo que totales, repartos y recientes ven el mismo período.
type LedgerQueryRepo struct {
	q Querier
}

// NewLedgerQueryRepository construye el adaptador.
func NewLedgerQueryRepository(q Querier) *LedgerQueryRepo {
	return &LedgerQueryRepo{q: q}
}

func (r *LedgerQueryRepo) sum(ctx context.Context, op, table string, f filter.Set) (decimal.Decimal, error) {
	where, args := f.SQL(1)
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM `+table+` `+where, args...).Scan(&total)
	if err != nil {
		return decimal.Zero, storeErr(op, err)
	}
	return total, nil
}

// SumSales suma de importes de ventas.
func (r *LedgerQueryRepo) SumSales(ctx context.Context, f filter.Set) (decimal.Decimal, error) {
	return r.sum(ctx, "ledger.sumSales", "sales", f)
}

// SumExpenses suma de importes de gastos.
func (r *LedgerQueryRepo) SumExpenses(ctx context.Context, f filter.Set) (decimal.Decimal, error) {
	return r.sum(ctx, "ledger.sumExpenses", "expenses", f)
}

func (r *LedgerQueryRepo) groups(ctx context.Context, op, table, column string, f filter.Set) ([]repository.GroupTotal, error) {
	where, args := f.SQL(1)
	query := fmt.Sprintf(`
		SELECT %[1]s AS label, SUM(amount) AS total
		FROM %[2]s
		%[3]s
		GROUP BY %[1]s
		HAVING SUM(amount) > 0
		ORDER BY total DESC, label ASC`, column, table, where)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	out := make([]repository.GroupTotal, 0)
	for rows.Next() {
		var g repository.GroupTotal
		if err := rows.Scan(&g.Label, &g.Total); err != nil {
			return nil, storeErr(op, err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return out, nil
}

// SalesByChannel total de ventas por canal.
func (r *LedgerQueryRepo) SalesByChannel(ctx context.Context, f filter.Set) ([]repository.GroupTotal, error) {
	return r.groups(ctx, "ledger.salesByChannel", "sales", string(filter.ColChannel), f)
}

// ExpensesByCategory total de gastos por categoría.
func (r *LedgerQueryRepo) ExpensesByCategory(ctx context.Context, f filter.Set) ([]repository.GroupTotal, error) {
	return r.groups(ctx, "ledger.expensesByCategory", "expenses", string(filter.ColCategory), f)
}

// RecentSales últimas ventas registradas (por created_at) dentro del filtro.
func (r *LedgerQueryRepo) RecentSales(ctx context.Context, f filter.Set, limit int) ([]*entity.Sale, error) {
	where, args := f.SQL(1)
	query := fmt.Sprintf(`SELECT %s FROM sales %s ORDER BY created_at DESC, id DESC LIMIT $%d`,
		saleColumns, where, len(args)+1)
	rows, err := r.q.Query(ctx, query, append(args, limit)...)
	if err != nil {
		return nil, storeErr("ledger.recentSales", err)
	}
	out, err := collectSales(rows)
	if err != nil {
		return nil, storeErr("ledger.recentSales", err)
	}
	return out, nil
}

// RecentExpenses últimos gastos registrados dentro del filtro.
func (r *LedgerQueryRepo) RecentExpenses(ctx context.Context, f filter.Set, limit int) ([]*entity.Expense, error) {
	where, args := f.SQL(1)
	query := fmt.Sprintf(`SELECT %s FROM expenses %s ORDER BY created_at DESC, id DESC LIMIT $%d`,
		expenseColumns, where, len(args)+1)
	rows, err := r.q.Query(ctx, query, append(args, limit)...)
	if err != nil {
		return nil, storeErr("ledger.recentExpenses", err)
	}
	out, err := collectExpenses(rows)
	if err != nil {
		return nil, storeErr("ledger.recentExpenses", err)
	}
	return out, nil
}
