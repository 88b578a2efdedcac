package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/caisse-api/internal/domain/entity"
	"github.com/jhoicas/caisse-api/internal/domain/filter"
	"github.com/jhoicas/caisse-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

const expenseColumns = `id, date, category, supplier, amount, payment_method, urgent, receipt_url, created_at, updated_at`

// ExpenseRepo implementación de ExpenseRepository sobre PostgreSQL (tabla expenses).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Acepta pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create inserta el gasto y completa ID, CreatedAt y UpdatedAt.
func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	const query = `
		INSERT INTO expenses (date, category, supplier, amount, payment_method, urgent, receipt_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		e.Date, e.Category, e.Supplier, e.Amount, string(e.PaymentMethod), e.Urgent, e.ReceiptURL,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return storeErr("expenses.create", err)
	}
	return nil
}

// GetByID obtiene un gasto. domain.ErrNotFound si no existe.
func (r *ExpenseRepo) GetByID(ctx context.Context, id int64) (*entity.Expense, error) {
	e, err := scanExpense(r.q.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id))
	if err != nil {
		return nil, storeErr("expenses.get", err)
	}
	return e, nil
}

// Update reemplaza todos los campos editables del gasto.
func (r *ExpenseRepo) Update(ctx context.Context, e *entity.Expense) error {
	const query = `
		UPDATE expenses
		SET date = $2, category = $3, supplier = $4, amount = $5, payment_method = $6,
		    urgent = $7, receipt_url = $8, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		e.ID, e.Date, e.Category, e.Supplier, e.Amount, string(e.PaymentMethod), e.Urgent, e.ReceiptURL,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return storeErr("expenses.update", err)
	}
	return nil
}

// Delete borra el gasto y lo devuelve.
func (r *ExpenseRepo) Delete(ctx context.Context, id int64) (*entity.Expense, error) {
	e, err := scanExpense(r.q.QueryRow(ctx, `DELETE FROM expenses WHERE id = $1 RETURNING `+expenseColumns, id))
	if err != nil {
		return nil, storeErr("expenses.delete", err)
	}
	return e, nil
}

// List devuelve los gastos que cumplen f, el más reciente primero.
func (r *ExpenseRepo) List(ctx context.Context, f filter.Set) ([]*entity.Expense, error) {
	where, args := f.SQL(1)
	rows, err := r.q.Query(ctx,
		`SELECT `+expenseColumns+` FROM expenses `+where+` ORDER BY date DESC, created_at DESC, id DESC`,
		args...)
	if err != nil {
		return nil, storeErr("expenses.list", err)
	}
	out, err := collectExpenses(rows)
	if err != nil {
		return nil, storeErr("expenses.list", err)
	}
	return out, nil
}

func scanExpense(row pgx.Row) (*entity.Expense, error) {
	var (
		e      entity.Expense
		method string
	)
	if err := row.Scan(
		&e.ID, &e.Date, &e.Category, &e.Supplier, &e.Amount, &method,
		&e.Urgent, &e.ReceiptURL, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.PaymentMethod = entity.ExpensePaymentMethod(method)
	return &e, nil
}

func collectExpenses(rows pgx.Rows) ([]*entity.Expense, error) {
	defer rows.Close()
	out := make([]*entity.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
