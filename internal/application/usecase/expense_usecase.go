package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/caisse-api/internal/application/dto"
	"github.com/jhoicas/caisse-api/internal/domain"
	"github.com/jhoicas/caisse-api/internal/domain/entity"
	"github.com/jhoicas/caisse-api/internal/domain/filter"
	"github.com/jhoicas/caisse-api/internal/domain/repository"
)

const (
	maxCategoryLen = 50
	maxSupplierLen = 100
)

// ExpenseUseCase casos de uso CRUD para las dépenses.
type ExpenseUseCase struct {
	repo  repository.ExpenseRepository
	clock func() time.Time
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository, clock func() time.Time) *ExpenseUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &ExpenseUseCase{repo: repo, clock: clock}
}

// Create valida, aplica valores por defecto y persiste un nuevo gasto.
func (uc *ExpenseUseCase) Create(ctx context.Context, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.toEntity(in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	out := dto.NewExpenseResponse(expense)
	return &out, nil
}

// GetByID obtiene un gasto; domain.ErrNotFound si no existe.
func (uc *ExpenseUseCase) GetByID(ctx context.Context, id int64) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewExpenseResponse(expense)
	return &out, nil
}

// Update reemplaza todos los campos del gasto.
func (uc *ExpenseUseCase) Update(ctx context.Context, id int64, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.toEntity(in)
	if err != nil {
		return nil, err
	}
	expense.ID = id
	if err := uc.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	out := dto.NewExpenseResponse(expense)
	return &out, nil
}

// Delete borra el gasto y devuelve la fila eliminada.
func (uc *ExpenseUseCase) Delete(ctx context.Context, id int64) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewExpenseResponse(expense)
	return &out, nil
}

// List devuelve los gastos filtrados por fecha, categoría, urgencia y/o período.
func (uc *ExpenseUseCase) List(ctx context.Context, q dto.ExpenseListQuery) ([]dto.ExpenseResponse, error) {
	f, err := listFilter(q.Date, q.Period, q.Start, q.End, uc.clock())
	if err != nil {
		return nil, err
	}
	if cat := strings.TrimSpace(q.Category); cat != "" {
		f = f.And(filter.Eq(filter.ColCategory, cat))
	}
	if u := strings.TrimSpace(q.Urgent); u != "" {
		urgent, err := strconv.ParseBool(u)
		if err != nil {
			return nil, fmt.Errorf("%w: urgent debe ser true o false", domain.ErrInvalidInput)
		}
		f = f.And(filter.Eq(filter.ColUrgent, urgent))
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewExpenseResponses(list), nil
}

func (uc *ExpenseUseCase) toEntity(in dto.ExpenseRequest) (*entity.Expense, error) {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, fmt.Errorf("%w: category es requerida", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(category) > maxCategoryLen {
		return nil, fmt.Errorf("%w: category supera %d caracteres", domain.ErrInvalidInput, maxCategoryLen)
	}
	supplier := strings.TrimSpace(in.Supplier)
	if utf8.RuneCountInString(supplier) > maxSupplierLen {
		return nil, fmt.Errorf("%w: supplier supera %d caracteres", domain.ErrInvalidInput, maxSupplierLen)
	}
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	date, err := parseBusinessDate(in.Date, uc.clock())
	if err != nil {
		return nil, err
	}
	method := entity.ExpensePaymentMethod(strings.TrimSpace(in.PaymentMethod))
	if method == "" {
		method = entity.DefaultExpensePaymentMethod
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: payment_method %q desconocido", domain.ErrInvalidInput, method)
	}
	return &entity.Expense{
		Date:          date,
		Category:      category,
		Supplier:      supplier,
		Amount:        amount,
		PaymentMethod: method,
		Urgent:        in.Urgent,
		ReceiptURL:    strings.TrimSpace(in.ReceiptURL),
	}, nil
}
