package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/caisse-api/internal/application/dto"
	"github.com/jhoicas/caisse-api/internal/domain"
	"github.com/jhoicas/caisse-api/internal/domain/entity"
	"github.com/jhoicas/caisse-api/internal/domain/filter"
	"github.com/jhoicas/caisse-api/internal/domain/repository"
)

// SaleUseCase casos de uso CRUD para las recettes.
type SaleUseCase struct {
	repo  repository.SaleRepository
	clock func() time.Time
}

// NewSaleUseCase construye el caso de uso. clock define "hoy" (zona horaria del restaurante).
func NewSaleUseCase(repo repository.SaleRepository, clock func() time.Time) *SaleUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &SaleUseCase{repo: repo, clock: clock}
}

// Create valida, aplica valores por defecto y persiste una nueva venta.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.SaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.toEntity(in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, sale); err != nil {
		return nil, err
	}
	out := dto.NewSaleResponse(sale)
	return &out, nil
}

// GetByID obtiene una venta; domain.ErrNotFound si no existe.
func (uc *SaleUseCase) GetByID(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	sale, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewSaleResponse(sale)
	return &out, nil
}

// Update reemplaza todos los campos de la venta. No hay semántica de parche parcial:
// los campos omitidos toman su valor por defecto.
func (uc *SaleUseCase) Update(ctx context.Context, id int64, in dto.SaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.toEntity(in)
	if err != nil {
		return nil, err
	}
	sale.ID = id
	if err := uc.repo.Update(ctx, sale); err != nil {
		return nil, err
	}
	out := dto.NewSaleResponse(sale)
	return &out, nil
}

// Delete borra la venta y devuelve la fila eliminada.
func (uc *SaleUseCase) Delete(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	sale, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewSaleResponse(sale)
	return &out, nil
}

// List devuelve las ventas filtradas por fecha, canal y/o período.
func (uc *SaleUseCase) List(ctx context.Context, q dto.SaleListQuery) ([]dto.SaleResponse, error) {
	f, err := listFilter(q.Date, q.Period, q.Start, q.End, uc.clock())
	if err != nil {
		return nil, err
	}
	if ch := strings.TrimSpace(q.Channel); ch != "" {
		if !entity.SaleChannel(ch).Valid() {
			return nil, fmt.Errorf("%w: channel %q desconocido", domain.ErrInvalidInput, ch)
		}
		f = f.And(filter.Eq(filter.ColChannel, ch))
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewSaleResponses(list), nil
}

func (uc *SaleUseCase) toEntity(in dto.SaleRequest) (*entity.Sale, error) {
	channel := entity.SaleChannel(strings.TrimSpace(in.Channel))
	if channel == "" {
		return nil, fmt.Errorf("%w: channel es requerido", domain.ErrInvalidInput)
	}
	if !channel.Valid() {
		return nil, fmt.Errorf("%w: channel %q desconocido", domain.ErrInvalidInput, channel)
	}
	amount, err := parseAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	date, err := parseBusinessDate(in.Date, uc.clock())
	if err != nil {
		return nil, err
	}
	method := entity.SalePaymentMethod(strings.TrimSpace(in.PaymentMethod))
	if method == "" {
		method = entity.DefaultSalePaymentMethod
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: payment_method %q desconocido", domain.ErrInvalidInput, method)
	}
	return &entity.Sale{
		Date:          date,
		Channel:       channel,
		Amount:        amount,
		PaymentMethod: method,
		Comment:       strings.TrimSpace(in.Comment),
	}, nil
}
