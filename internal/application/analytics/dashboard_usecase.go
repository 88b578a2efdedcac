package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/caisse-api/internal/application/dto"
	"github.com/jhoicas/caisse-api/internal/domain/period"
)

// DashboardUseCase resuelve el período pedido y presenta los agregados del motor.
type DashboardUseCase struct {
	engine *Engine
	clock  func() time.Time
}

// NewDashboardUseCase construye el caso de uso. clock define "hoy" en la zona del restaurante.
func NewDashboardUseCase(engine *Engine, clock func() time.Time) *DashboardUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &DashboardUseCase{engine: engine, clock: clock}
}

// Get construye el DashboardResponse. Un token vacío equivale a today; uno desconocido
// devuelve domain.ErrInvalidPeriod.
func (uc *DashboardUseCase) Get(ctx context.Context, q dto.DashboardQuery) (*dto.DashboardResponse, error) {
	p, err := period.Parse(q.Period, q.Start, q.End, uc.clock())
	if err != nil {
		return nil, err
	}
	res, err := uc.engine.Aggregate(ctx, p)
	if err != nil {
		return nil, err
	}
	return toDashboard(res), nil
}

func toDashboard(res *AggregateResult) *dto.DashboardResponse {
	out := &dto.DashboardResponse{
		Period: res.Period.Token,
		Totals: dto.TotalsDTO{
			Sales:     res.TotalSales.Round(2),
			Expenses:  res.TotalExpenses.Round(2),
			NetProfit: res.NetProfit.Round(2),
		},
		SalesByChannel:     make([]dto.ChannelTotalDTO, 0, len(res.SalesByChannel)),
		ExpensesByCategory: make([]dto.CategoryTotalDTO, 0, len(res.ExpensesByCategory)),
		RecentSales:        dto.NewSaleResponses(res.RecentSales),
		RecentExpenses:     dto.NewExpenseResponses(res.RecentExpenses),
	}
	if res.Period.Bounded {
		out.Range = &dto.PeriodDTO{
			Start: res.Period.Start.Format(period.DateLayout),
			End:   res.Period.End.Format(period.DateLayout),
		}
	}
	for _, g := range res.SalesByChannel {
		out.SalesByChannel = append(out.SalesByChannel, dto.ChannelTotalDTO{Channel: g.Label, Total: g.Total.Round(2)})
	}
	for _, g := range res.ExpensesByCategory {
		out.ExpensesByCategory = append(out.ExpensesByCategory, dto.CategoryTotalDTO{Category: g.Label, Total: g.Total.Round(2)})
	}
	return out
}
