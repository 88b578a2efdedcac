package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caisse-api/internal/application/dto"
	"github.com/jhoicas/caisse-api/internal/application/usecase"
	"github.com/jhoicas/caisse-api/internal/domain"
	"github.com/jhoicas/caisse-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestSale_CreateYGetByID_RoundTrip(t *testing.T) {
	store := memory.NewStore(clock)
	uc := usecase.NewSaleUseCase(store.Sales(), clock)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.SaleRequest{
		Date:          "2026-10-17",
		Channel:       "dinner",
		Amount:        amount("230.75"),
		PaymentMethod: "meal_voucher",
		Comment:       "  table 12 ",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID, "el id lo asigna el almacén")
	assert.Equal(t, fixedNow, created.CreatedAt)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)
	assert.Equal(t, "2026-10-17", got.Date)
	assert.Equal(t, "dinner", got.Channel)
	assert.True(t, decimal.RequireFromString("230.75").Equal(got.Amount))
	assert.Equal(t, "meal_voucher", got.PaymentMethod)
	assert.Equal(t, "table 12", got.Comment)
}

func TestSale_ValoresPorDefecto(t *testing.T) {
	store := memory.NewStore(clock)
	uc := usecase.NewSaleUseCase(store.Sales(), clock)

	out, err := uc.Create(context.Background(), dto.SaleRequest{Channel: "lunch", Amount: amount("150.50")})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-18", out.Date, "la fecha por defecto es hoy")
	assert.Equal(t, "cash", out.PaymentMethod, "el medio de cobro por defecto es cash")
}

func TestSale_Validacion(t *testing.T) {
	store := memory.NewStore(clock)
	uc := usecase.NewSaleUseCase(store.Sales(), clock)

	tests := []struct {
		name string
		in   dto.SaleRequest
	}{
		{"sin canal", dto.SaleRequest{Amount: amount("10")}},
		{"canal desconocido", dto.SaleRequest{Channel: "brunch", Amount: amount("10")}},
		{"sin importe", dto.SaleRequest{Channel: "lunch"}},
		{"importe negativo", dto.SaleRequest{Channel: "lunch", Amount: amount("-1")}},
		{"tres decimales", dto.SaleRequest{Channel: "lunch", Amount: amount("1.005")}},
		{"fecha inválida", dto.SaleRequest{Channel: "lunch", Amount: amount("10"), Date: "18/10/2026"}},
		{"medio de cobro desconocido", dto.SaleRequest{Channel: "lunch", Amount: amount("10"), PaymentMethod: "bitcoin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tt.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSale_UpdateConservaCreatedAt(t *testing.T) {
	now := fixedNow
	tick := func() time.Time { return now }
	store := memory.NewStore(tick)
	uc := usecase.NewSaleUseCase(store.Sales(), tick)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.SaleRequest{Channel: "lunch", Amount: amount("10")})
	require.NoError(t, err)

	now = now.Add(time.Hour)
	updated, err := uc.Update(ctx, created.ID, dto.SaleRequest{Channel: "takeout", Amount: amount("12.30")})
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt, "created_at es inmutable")
	assert.Equal(t, now, updated.UpdatedAt)
	assert.Equal(t, "takeout", updated.Channel)

	_, err = uc.Update(ctx, 999, dto.SaleRequest{Channel: "lunch", Amount: amount("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSale_DeleteDevuelveLaFilaYNotFound(t *testing.T) {
	store := memory.NewStore(clock)
	uc := usecase.NewSaleUseCase(store.Sales(), clock)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.SaleRequest{Channel: "lunch", Amount: amount("10")})
	require.NoError(t, err)

	deleted, err := uc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = uc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "borrar un id inexistente no es un éxito")
}

func TestSale_ListFiltros(t *testing.T) {
	store := memory.NewStore(clock)
	uc := usecase.NewSaleUseCase(store.Sales(), clock)
	ctx := context.Background()

	for _, in := range []dto.SaleRequest{
		{Date: "2026-10-18", Channel: "lunch", Amount: amount("10")},
		{Date: "2026-10-18", Channel: "dinner", Amount: amount("20")},
		{Date: "2026-10-01", Channel: "lunch", Amount: amount("30")},
	} {
		_, err := uc.Create(ctx, in)
		require.NoError(t, err)
	}

	all, err := uc.List(ctx, dto.SaleListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "2026-10-18", all[0].Date, "orden por fecha descendente")

	byDate, err := uc.List(ctx, dto.SaleListQuery{Date: "2026-10-18", Channel: "lunch"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.True(t, decimal.NewFromInt(10).Equal(byDate[0].Amount))

	week, err := uc.List(ctx, dto.SaleListQuery{Period: "week"})
	require.NoError(t, err)
	assert.Len(t, week, 2)

	_, err = uc.List(ctx, dto.SaleListQuery{Channel: "brunch"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.List(ctx, dto.SaleListQuery{Period: "decade"})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestParseID(t *testing.T) {
	id, err := usecase.ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := usecase.ParseID(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "id %q", raw)
	}
}
