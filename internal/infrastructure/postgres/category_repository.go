package postgres

import (
	"context"

	"github.com/jhoicas/caisse-api/internal/domain/entity"
	"github.com/jhoicas/caisse-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo categorías distintas de la tabla expenses.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// ListUsed categorías con su número de dépenses, de más a menos usada.
func (r *CategoryRepo) ListUsed(ctx context.Context) ([]entity.Category, error) {
	const query = `
		SELECT category, COUNT(*) AS uses
		FROM expenses
		GROUP BY category
		ORDER BY uses DESC, category ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storeErr("categories.listUsed", err)
	}
	defer rows.Close()

	out := make([]entity.Category, 0)
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.Name, &c.Uses); err != nil {
			return nil, storeErr("categories.listUsed", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("categories.listUsed", err)
	}
	return out, nil
}
