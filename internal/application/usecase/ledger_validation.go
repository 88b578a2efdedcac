package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/caisse-api/internal/domain"
	"github.com/jhoicas/caisse-api/internal/domain/filter"
	"github.com/jhoicas/caisse-api/internal/domain/period"
)

// maxAmount límite de NUMERIC(10,2).
var maxAmount = decimal.RequireFromString("99999999.99")

// parseAmount valida el importe ya decodificado del JSON: requerido, >= 0, como mucho 2 decimales.
func parseAmount(amount *decimal.Decimal) (decimal.Decimal, error) {
	if amount == nil {
		return decimal.Zero, fmt.Errorf("%w: amount es requerido", domain.ErrInvalidInput)
	}
	a := *amount
	if a.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount no puede ser negativo", domain.ErrInvalidInput)
	}
	if !a.Equal(a.Round(2)) {
		return decimal.Zero, fmt.Errorf("%w: amount admite como máximo 2 decimales", domain.ErrInvalidInput)
	}
	if a.GreaterThan(maxAmount) {
		return decimal.Zero, fmt.Errorf("%w: amount supera el máximo permitido", domain.ErrInvalidInput)
	}
	return a, nil
}

// parseBusinessDate interpreta YYYY-MM-DD; vacío devuelve la fecha de hoy según el reloj.
func parseBusinessDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return period.Date(now), nil
	}
	d, err := time.Parse(period.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return d, nil
}

// listFilter arma el filtro de un listado. Sin período explícito los listados no filtran
// por fecha (equivalente a all); date fija un único día.
func listFilter(date, token, start, end string, now time.Time) (filter.Set, error) {
	if strings.TrimSpace(date) != "" {
		d, err := parseBusinessDate(date, now)
		if err != nil {
			return filter.Set{}, err
		}
		return filter.New(filter.Eq(filter.ColDate, d)), nil
	}
	if token == "" && start == "" && end == "" {
		return filter.Set{}, nil
	}
	p, err := period.Parse(token, start, end, now)
	if err != nil {
		return filter.Set{}, err
	}
	return filter.ForPeriod(p), nil
}

// ParseID valida un identificador de ruta numérico y positivo.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q no es numérico", domain.ErrInvalidInput, raw)
	}
	return id, nil
}
