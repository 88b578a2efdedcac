package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caisse-api/internal/application/analytics"
	"github.com/jhoicas/caisse-api/internal/domain"
	"github.com/jhoicas/caisse-api/internal/domain/entity"
	"github.com/jhoicas/caisse-api/internal/domain/period"
	"github.com/jhoicas/caisse-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func addSale(t *testing.T, store *memory.Store, date time.Time, ch entity.SaleChannel, amt string) {
	t.Helper()
	require.NoError(t, store.Sales().Create(context.Background(), &entity.Sale{
		Date: date, Channel: ch, Amount: dec(amt), PaymentMethod: entity.SalePaymentCash,
	}))
}

func addExpense(t *testing.T, store *memory.Store, date time.Time, cat, amt string) {
	t.Helper()
	require.NoError(t, store.Expenses().Create(context.Background(), &entity.Expense{
		Date: date, Category: cat, Amount: dec(amt), PaymentMethod: entity.ExpensePaymentCard,
	}))
}

// ─── Agregación ──────────────────────────────────────────────────────────────

func TestEngine_Aggregate_TotalesYRepartoPorCanal(t *testing.T) {
	store := memory.NewStore(clock)
	today := period.Date(fixedNow)
	addSale(t, store, today, entity.SaleChannelLunch, "150.50")
	addSale(t, store, today, entity.SaleChannelDinner, "230.75")
	addSale(t, store, today, entity.SaleChannelTakeout, "89.90")

	p, err := period.Resolve(period.Today, fixedNow)
	require.NoError(t, err)

	res, err := analytics.NewEngine(store.Ledger()).Aggregate(context.Background(), p)
	require.NoError(t, err)

	assert.True(t, res.TotalSales.Equal(dec("471.15")), "total ventas: %s", res.TotalSales)
	assert.True(t, res.TotalExpenses.IsZero())
	assert.True(t, res.NetProfit.Equal(dec("471.15")))
	require.Len(t, res.SalesByChannel, 3)
	assert.Equal(t, "dinner", res.SalesByChannel[0].Label)
	assert.Equal(t, "lunch", res.SalesByChannel[1].Label)
	assert.Equal(t, "takeout", res.SalesByChannel[2].Label)
	assert.Empty(t, res.ExpensesByCategory)
	assert.Len(t, res.RecentSales, 3)
	assert.NotNil(t, res.RecentExpenses)
	assert.Empty(t, res.RecentExpenses)
}

func TestEngine_Aggregate_SinActividad(t *testing.T) {
	store := memory.NewStore(clock)
	addSale(t, store, day(2026, 9, 1), entity.SaleChannelLunch, "40")

	p, err := period.Resolve(period.Today, fixedNow)
	require.NoError(t, err)

	res, err := analytics.NewEngine(store.Ledger()).Aggregate(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, res.TotalSales.IsZero())
	assert.True(t, res.TotalExpenses.IsZero())
	assert.True(t, res.NetProfit.IsZero())
	assert.Empty(t, res.SalesByChannel)
	assert.Empty(t, res.ExpensesByCategory)
	assert.Empty(t, res.RecentSales)
	assert.Empty(t, res.RecentExpenses)
}

func TestEngine_Aggregate_RepartosCoherentesConTotales(t *testing.T) {
	store := memory.NewStore(clock)
	addSale(t, store, day(2026, 10, 12), entity.SaleChannelLunch, "100.10")
	addSale(t, store, day(2026, 10, 15), entity.SaleChannelLunch, "20.05")
	addSale(t, store, day(2026, 10, 18), entity.SaleChannelDinner, "310")
	addSale(t, store, day(2026, 9, 30), entity.SaleChannelDinner, "999") // fuera de la semana
	addExpense(t, store, day(2026, 10, 13), "Alimentation", "80.40")
	addExpense(t, store, day(2026, 10, 17), "Énergie", "120")
	addExpense(t, store, day(2026, 10, 17), "Alimentation", "15.60")

	p, err := period.Resolve(period.Week, fixedNow)
	require.NoError(t, err)

	res, err := analytics.NewEngine(store.Ledger()).Aggregate(context.Background(), p)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, g := range res.SalesByChannel {
		sum = sum.Add(g.Total)
	}
	assert.True(t, sum.Equal(res.TotalSales), "la suma por canal debe igualar el total")
	sum = decimal.Zero
	for _, g := range res.ExpensesByCategory {
		sum = sum.Add(g.Total)
	}
	assert.True(t, sum.Equal(res.TotalExpenses), "la suma por categoría debe igualar el total")
	assert.True(t, res.TotalSales.Equal(dec("430.15")))
	assert.True(t, res.TotalExpenses.Equal(dec("216")))
	assert.True(t, res.NetProfit.Equal(dec("214.15")))

	// Alimentation suma 96 y Énergie 120: orden por total descendente.
	require.Len(t, res.ExpensesByCategory, 2)
	assert.Equal(t, "Énergie", res.ExpensesByCategory[0].Label)
}

func recentSaleIDs(sales []*entity.Sale) []int64 {
	ids := make([]int64, 0, len(sales))
	for _, v := range sales {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestEngine_Aggregate_RecientesLimitadosACinco(t *testing.T) {
	store := memory.NewStore(clock)
	for i := 0; i < 8; i++ {
		addSale(t, store, day(2026, 10, 11+i), entity.SaleChannelLunch, "10")
	}
	addSale(t, store, day(2026, 9, 1), entity.SaleChannelDinner, "500") // fuera de la semana

	p, err := period.Resolve(period.Week, fixedNow)
	require.NoError(t, err)

	res, err := analytics.NewEngine(store.Ledger()).Aggregate(context.Background(), p)
	require.NoError(t, err)

	// Mismo created_at para todas: desempata el id descendente.
	assert.Equal(t, []int64{8, 7, 6, 5, 4}, recentSaleIDs(res.RecentSales))
	assert.True(t, res.TotalSales.Equal(dec("80")))
	require.Len(t, res.SalesByChannel, 1)
	assert.Equal(t, "lunch", res.SalesByChannel[0].Label)
}

func TestEngine_Aggregate_RecientesPorCreatedAt(t *testing.T) {
	// El reloj retrocede: los ids crecen pero created_at decrece.
	at := fixedNow
	store := memory.NewStore(func() time.Time { return at })
	for _, offset := range []time.Duration{0, -time.Hour, -2 * time.Hour} {
		at = fixedNow.Add(offset)
		addSale(t, store, day(2026, 10, 18), entity.SaleChannelLunch, "10")
	}
	at = fixedNow.Add(-2 * time.Hour) // empata con el id 3
	addSale(t, store, day(2026, 10, 18), entity.SaleChannelDinner, "10")
	at = fixedNow.Add(-3 * time.Hour)
	require.NoError(t, store.Expenses().Create(context.Background(), &entity.Expense{
		Date: day(2026, 10, 18), Category: "Food", Amount: dec("3"), PaymentMethod: entity.ExpensePaymentCash,
	}))
	at = fixedNow.Add(time.Hour)
	require.NoError(t, store.Expenses().Create(context.Background(), &entity.Expense{
		Date: day(2026, 10, 18), Category: "Rent", Amount: dec("4"), PaymentMethod: entity.ExpensePaymentCash,
	}))

	p, err := period.Resolve(period.Today, fixedNow)
	require.NoError(t, err)

	res, err := analytics.NewEngine(store.Ledger()).Aggregate(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 4, 3}, recentSaleIDs(res.RecentSales))
	require.Len(t, res.RecentExpenses, 2)
	assert.Equal(t, "Rent", res.RecentExpenses[0].Category)
	assert.Equal(t, "Food", res.RecentExpenses[1].Category)
}

func TestEngine_Aggregate_OmiteGruposSinActividad(t *testing.T) {
	store := memory.NewStore(clock)
	today := period.Date(fixedNow)
	addSale(t, store, today, entity.SaleChannelLunch, "42.50")
	addSale(t, store, today, entity.SaleChannelTakeout, "0")
	addExpense(t, store, today, "Food", "0")

	p, err := period.Resolve(period.Today, fixedNow)
	require.NoError(t, err)

	res, err := analytics.NewEngine(store.Ledger()).Aggregate(context.Background(), p)
	require.NoError(t, err)

	require.Len(t, res.SalesByChannel, 1)
	assert.Equal(t, "lunch", res.SalesByChannel[0].Label)
	assert.Empty(t, res.ExpensesByCategory)
	assert.True(t, res.TotalSales.Equal(dec("42.5")))
	// Los registros a cero siguen apareciendo entre los recientes.
	assert.Len(t, res.RecentSales, 2)
	assert.Len(t, res.RecentExpenses, 1)
}

func TestEngine_Aggregate_Idempotente(t *testing.T) {
	store := memory.NewStore(clock)
	addSale(t, store, day(2026, 10, 18), entity.SaleChannelDinner, "55.55")
	addExpense(t, store, day(2026, 10, 18), "Divers", "5")
	engine := analytics.NewEngine(store.Ledger())
	p, err := period.Resolve(period.Today, fixedNow)
	require.NoError(t, err)

	first, err := engine.Aggregate(context.Background(), p)
	require.NoError(t, err)
	second, err := engine.Aggregate(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// ─── Errores ─────────────────────────────────────────────────────────────────

func TestEngine_Aggregate_AlmacenNoDisponible(t *testing.T) {
	store := memory.NewStore(clock)
	store.Fail(errors.New("connection refused"))

	res, err := analytics.NewEngine(store.Ledger()).Aggregate(context.Background(), period.Period{Token: period.All})
	assert.Nil(t, res, "no debe devolver resultados parciales")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
