package repository

import (
	"context"

	"github.com/jhoicas/caisse-api/internal/domain/entity"
)

// CategoryRepository categorías de gasto ya registradas en las dépenses.
type CategoryRepository interface {
	// ListUsed devuelve cada categoría distinta con su número de usos, de más a menos usada
	// y, a igualdad, por nombre.
	ListUsed(ctx context.Context) ([]entity.Category, error)
}
