// Package analytics contiene el motor de agregación del libro de caja y el caso de uso del
// dashboard.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/caisse-api/internal/domain"
	"github.com/jhoicas/caisse-api/internal/domain/entity"
	"github.com/jhoicas/caisse-api/internal/domain/filter"
	"github.com/jhoicas/caisse-api/internal/domain/period"
	"github.com/jhoicas/caisse-api/internal/domain/repository"
)

// RecentLimit número de ventas y gastos recientes del resultado.
const RecentLimit = 5

// AggregateResult agregados de un período. Los importes no están redondeados: el redondeo a
// 2 decimales ocurre solo al presentar.
type AggregateResult struct {
	Period             period.Period
	TotalSales         decimal.Decimal
	TotalExpenses      decimal.Decimal
	NetProfit          decimal.Decimal // TotalSales - TotalExpenses
	SalesByChannel     []repository.GroupTotal
	ExpensesByCategory []repository.GroupTotal
	RecentSales        []*entity.Sale
	RecentExpenses     []*entity.Expense
}

// Engine calcula los agregados de un período contra el LedgerQueryRepository.
type Engine struct {
	repo repository.LedgerQueryRepository
}

// NewEngine construye el motor.
func NewEngine(repo repository.LedgerQueryRepository) *Engine {
	return &Engine{repo: repo}
}

// Aggregate lanza las seis consultas en paralelo con un único filtro derivado del período.
// Si alguna falla, las demás se cancelan y se devuelve domain.ErrStoreUnavailable; nunca se
// devuelve un resultado parcial.
func (e *Engine) Aggregate(ctx context.Context, p period.Period) (*AggregateResult, error) {
	f := filter.ForPeriod(p)
	res := AggregateResult{Period: p}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := e.repo.SumSales(gctx, f)
		if err != nil {
			return fmt.Errorf("total ventas: %w", err)
		}
		res.TotalSales = v
		return nil
	})
	g.Go(func() error {
		v, err := e.repo.SumExpenses(gctx, f)
		if err != nil {
			return fmt.Errorf("total gastos: %w", err)
		}
		res.TotalExpenses = v
		return nil
	})
	g.Go(func() error {
		v, err := e.repo.SalesByChannel(gctx, f)
		if err != nil {
			return fmt.Errorf("ventas por canal: %w", err)
		}
		res.SalesByChannel = normalizeGroups(v)
		return nil
	})
	g.Go(func() error {
		v, err := e.repo.ExpensesByCategory(gctx, f)
		if err != nil {
			return fmt.Errorf("gastos por categoría: %w", err)
		}
		res.ExpensesByCategory = normalizeGroups(v)
		return nil
	})
	g.Go(func() error {
		v, err := e.repo.RecentSales(gctx, f, RecentLimit)
		if err != nil {
			return fmt.Errorf("ventas recientes: %w", err)
		}
		res.RecentSales = v
		return nil
	})
	g.Go(func() error {
		v, err := e.repo.RecentExpenses(gctx, f, RecentLimit)
		if err != nil {
			return fmt.Errorf("gastos recientes: %w", err)
		}
		res.RecentExpenses = v
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return nil, fmt.Errorf("analytics: %w", err)
		}
		return nil, fmt.Errorf("analytics: %w: %w", domain.ErrStoreUnavailable, err)
	}

	if res.RecentSales == nil {
		res.RecentSales = []*entity.Sale{}
	}
	if res.RecentExpenses == nil {
		res.RecentExpenses = []*entity.Expense{}
	}
	res.NetProfit = res.TotalSales.Sub(res.TotalExpenses)
	return &res, nil
}

// normalizeGroups descarta los grupos sin importe y ordena por total descendente
// (a igualdad, por etiqueta) sin depender del orden que devuelva el almacén.
func normalizeGroups(in []repository.GroupTotal) []repository.GroupTotal {
	out := make([]repository.GroupTotal, 0, len(in))
	for _, g := range in {
		if g.Total.IsPositive() {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Label < out[j].Label
	})
	return out
}
