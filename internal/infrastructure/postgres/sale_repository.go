package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/caisse-api/internal/domain/entity"
	"github.com/jhoicas/caisse-api/internal/domain/filter"
	"github.com/jhoicas/caisse-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, date, channel, amount, payment_method, comment, created_at, updated_at`

// SaleRepo implementación de SaleRepository sobre PostgreSQL (tabla sales).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Acepta pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la venta y completa ID, CreatedAt y UpdatedAt con los valores de la base.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	const query = `
		INSERT INTO sales (date, channel, amount, payment_method, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		s.Date, string(s.Channel), s.Amount, string(s.PaymentMethod), s.Comment,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return storeErr("sales.create", err)
	}
	return nil
}

// GetByID obtiene una venta. domain.ErrNotFound si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		return nil, storeErr("sales.get", err)
	}
	return s, nil
}

// Update reemplaza todos los campos editables. created_at no cambia; updated_at = now().
func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	const query = `
		UPDATE sales
		SET date = $2, channel = $3, amount = $4, payment_method = $5, comment = $6, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		s.ID, s.Date, string(s.Channel), s.Amount, string(s.PaymentMethod), s.Comment,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return storeErr("sales.update", err)
	}
	return nil
}

// Delete borra la venta y la devuelve tal como estaba.
func (r *SaleRepo) Delete(ctx context.Context, id int64) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `DELETE FROM sales WHERE id = $1 RETURNING `+saleColumns, id))
	if err != nil {
		return nil, storeErr("sales.delete", err)
	}
	return s, nil
}

// List devuelve las ventas que cumplen f, la más reciente primero.
func (r *SaleRepo) List(ctx context.Context, f filter.Set) ([]*entity.Sale, error) {
	where, args := f.SQL(1)
	rows, err := r.q.Query(ctx,
		`SELECT `+saleColumns+` FROM sales `+where+` ORDER BY date DESC, created_at DESC, id DESC`,
		args...)
	if err != nil {
		return nil, storeErr("sales.list", err)
	}
	out, err := collectSales(rows)
	if err != nil {
		return nil, storeErr("sales.list", err)
	}
	return out, nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var (
		s       entity.Sale
		channel string
		method  string
	)
	if err := row.Scan(&s.ID, &s.Date, &channel, &s.Amount, &method, &s.Comment, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Channel = entity.SaleChannel(channel)
	s.PaymentMethod = entity.SalePaymentMethod(method)
	return &s, nil
}

func collectSales(rows pgx.Rows) ([]*entity.Sale, error) {
	defer rows.Close()
	out := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
