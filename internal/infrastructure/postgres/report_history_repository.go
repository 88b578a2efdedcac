package postgres

import (
	"context"

	"github.com/jhoicas/caisse-api/internal/domain/entity"
	"github.com/jhoicas/caisse-api/internal/domain/repository"
)

var _ repository.ReportHistoryRepository = (*ReportHistoryRepo)(nil)

// ReportHistoryRepo tabla rapports_history. Solo INSERT y SELECT.
type ReportHistoryRepo struct {
	q Querier
}

// NewReportHistoryRepository construye el adaptador.
func NewReportHistoryRepository(q Querier) *ReportHistoryRepo {
	return &ReportHistoryRepo{q: q}
}

// Create inserta la fila de auditoría. Si GeneratedAt viene vacío usa now().
func (r *ReportHistoryRepo) Create(ctx context.Context, rec *entity.ReportRecord) error {
	const query = `
		INSERT INTO rapports_history (report_type, period_start, period_end, total_sales, total_expenses, generated_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()))
		RETURNING id, generated_at`
	var generatedAt any
	if !rec.GeneratedAt.IsZero() {
		generatedAt = rec.GeneratedAt
	}
	err := r.q.QueryRow(ctx, query,
		rec.ReportType, rec.PeriodStart, rec.PeriodEnd, rec.TotalSales, rec.TotalExpenses, generatedAt,
	).Scan(&rec.ID, &rec.GeneratedAt)
	if err != nil {
		return storeErr("reports.create", err)
	}
	return nil
}

// List últimos envíos, el más reciente primero.
func (r *ReportHistoryRepo) List(ctx context.Context, limit int) ([]*entity.ReportRecord, error) {
	const query = `
		SELECT id, report_type, period_start, period_end, total_sales, total_expenses, generated_at
		FROM rapports_history
		ORDER BY generated_at DESC, id DESC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, storeErr("reports.list", err)
	}
	defer rows.Close()

	out := make([]*entity.ReportRecord, 0)
	for rows.Next() {
		var rec entity.ReportRecord
		if err := rows.Scan(
			&rec.ID, &rec.ReportType, &rec.PeriodStart, &rec.PeriodEnd,
			&rec.TotalSales, &rec.TotalExpenses, &rec.GeneratedAt,
		); err != nil {
			return nil, storeErr("reports.list", err)
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("reports.list", err)
	}
	return out, nil
}
