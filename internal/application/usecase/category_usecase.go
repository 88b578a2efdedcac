package usecase

import (
	"context"

	"github.com/jhoicas/caisse-api/internal/application/dto"
	"github.com/jhoicas/caisse-api/internal/domain/entity"
	"github.com/jhoicas/caisse-api/internal/domain/repository"
)

// CategoryUseCase catálogo de categorías de gasto.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// List devuelve primero las categorías ya usadas (más usadas antes) y después las sugeridas
// que aún no aparecen en ningún gasto, en su orden habitual.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	used, err := uc.repo.ListUsed(ctx)
	if err != nil {
		return nil, err
	}
	suggested := make(map[string]bool)
	for _, name := range entity.ExpenseCategories() {
		suggested[name] = true
	}

	out := make([]dto.CategoryResponse, 0, len(used)+len(suggested))
	seen := make(map[string]bool, len(used))
	for _, c := range used {
		seen[c.Name] = true
		out = append(out, dto.CategoryResponse{Name: c.Name, Suggested: suggested[c.Name], Uses: c.Uses})
	}
	for _, name := range entity.ExpenseCategories() {
		if !seen[name] {
			out = append(out, dto.CategoryResponse{Name: name, Suggested: true})
		}
	}
	return out, nil
}
