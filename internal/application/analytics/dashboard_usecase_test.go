package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caisse-api/internal/application/analytics"
	"github.com/jhoicas/caisse-api/internal/application/dto"
	"github.com/jhoicas/caisse-api/internal/domain"
	"github.com/jhoicas/caisse-api/internal/domain/entity"
	"github.com/jhoicas/caisse-api/internal/infrastructure/memory"
)

func newDashboard(store *memory.Store) *analytics.DashboardUseCase {
	return analytics.NewDashboardUseCase(analytics.NewEngine(store.Ledger()), clock)
}

func TestDashboard_Get_PorDefectoHoy(t *testing.T) {
	store := memory.NewStore(clock)
	addSale(t, store, day(2026, 10, 18), entity.SaleChannelLunch, "150.50")
	addSale(t, store, day(2026, 10, 18), entity.SaleChannelDinner, "230.75")
	addSale(t, store, day(2026, 10, 18), entity.SaleChannelTakeout, "89.90")
	addSale(t, store, day(2026, 10, 17), entity.SaleChannelTakeout, "1000")

	out, err := newDashboard(store).Get(context.Background(), dto.DashboardQuery{})
	require.NoError(t, err)

	assert.Equal(t, "today", out.Period)
	require.NotNil(t, out.Range)
	assert.Equal(t, "2026-10-18", out.Range.Start)
	assert.Equal(t, "2026-10-18", out.Range.End)
	assert.Equal(t, "471.15", out.Totals.Sales.StringFixed(2))
	assert.Equal(t, "0.00", out.Totals.Expenses.StringFixed(2))
	assert.Equal(t, "471.15", out.Totals.NetProfit.StringFixed(2))
	require.Len(t, out.SalesByChannel, 3)
	assert.Equal(t, "dinner", out.SalesByChannel[0].Channel)
	assert.Equal(t, "230.75", out.SalesByChannel[0].Total.StringFixed(2))
	assert.NotNil(t, out.ExpensesByCategory)
	assert.Empty(t, out.ExpensesByCategory)
	require.Len(t, out.RecentSales, 3)
	assert.Equal(t, int64(3), out.RecentSales[0].ID)
	assert.Equal(t, "takeout", out.RecentSales[0].Channel)
	assert.Equal(t, int64(1), out.RecentSales[2].ID)
}

func TestDashboard_Get_AllSinRango(t *testing.T) {
	store := memory.NewStore(clock)
	addExpense(t, store, day(2025, 1, 2), "Loyer", "1200")

	out, err := newDashboard(store).Get(context.Background(), dto.DashboardQuery{Period: "all"})
	require.NoError(t, err)
	assert.Nil(t, out.Range)
	assert.Equal(t, "-1200.00", out.Totals.NetProfit.StringFixed(2), "el beneficio puede ser negativo")
}

func TestDashboard_Get_RangoExplicito(t *testing.T) {
	store := memory.NewStore(clock)
	addSale(t, store, day(2026, 10, 1), entity.SaleChannelLunch, "10")
	addSale(t, store, day(2026, 10, 5), entity.SaleChannelLunch, "20")

	out, err := newDashboard(store).Get(context.Background(), dto.DashboardQuery{Start: "2026-10-01", End: "2026-10-02"})
	require.NoError(t, err)
	assert.Equal(t, "10.00", out.Totals.Sales.StringFixed(2))
}

func TestDashboard_Get_PeriodoInvalido(t *testing.T) {
	store := memory.NewStore(clock)
	_, err := newDashboard(store).Get(context.Background(), dto.DashboardQuery{Period: "year"})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = newDashboard(store).Get(context.Background(), dto.DashboardQuery{Start: "2026-10-05", End: "2026-10-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestDashboard_Get_AlmacenNoDisponible(t *testing.T) {
	store := memory.NewStore(clock)
	store.Fail(errors.New("timeout"))
	out, err := newDashboard(store).Get(context.Background(), dto.DashboardQuery{})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
