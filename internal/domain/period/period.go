// Package period traduce los tokens de período (today, week, month, all o un rango
// explícito) a intervalos de fechas de calendario con ambos extremos inclusivos.
package period

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/caisse-api/internal/domain"
)

// Tokens admitidos.
const (
	Today  = "today"
	Week   = "week"
	Month  = "month"
	All    = "all"
	Custom = "range"
)

// DateLayout formato de fecha de negocio en la API y en la base (YYYY-MM-DD).
const DateLayout = "2006-01-02"

const (
	weekDays  = 7
	monthDays = 30
)

// Period intervalo resuelto. Start y End son fechas de calendario y ambas se incluyen.
// Un período sin límites (all) no filtra.
type Period struct {
	Token   string
	Start   time.Time
	End     time.Time
	Bounded bool
}

// Resolve resuelve un token contra el instante de referencia.
// Los tokens desconocidos (incluido el vacío) devuelven domain.ErrInvalidPeriod.
func Resolve(token string, ref time.Time) (Period, error) {
	today := Date(ref)
	switch token {
	case Today:
		return Period{Token: Today, Start: today, End: today, Bounded: true}, nil
	case Week:
		return Period{Token: Week, Start: today.AddDate(0, 0, -weekDays), End: today, Bounded: true}, nil
	case Month:
		return Period{Token: Month, Start: today.AddDate(0, 0, -monthDays), End: today, Bounded: true}, nil
	case All:
		return Period{Token: All}, nil
	default:
		return Period{}, fmt.Errorf("%w: token desconocido %q", domain.ErrInvalidPeriod, token)
	}
}

// Range construye un período explícito. start posterior a end es un error.
func Range(start, end time.Time) (Period, error) {
	s, e := Date(start), Date(end)
	if s.After(e) {
		return Period{}, fmt.Errorf("%w: inicio %s posterior a fin %s",
			domain.ErrInvalidPeriod, s.Format(DateLayout), e.Format(DateLayout))
	}
	return Period{Token: Custom, Start: s, End: e, Bounded: true}, nil
}

// LastDays devuelve el período [ref - days, ref]. Lo usa el reporte semanal (7 días).
func LastDays(days int, ref time.Time) Period {
	today := Date(ref)
	return Period{Token: Custom, Start: today.AddDate(0, 0, -days), End: today, Bounded: true}
}

// Parse es el punto de entrada desde la frontera HTTP: start/end explícitos tienen prioridad
// sobre el token; un token vacío equivale a today.
func Parse(token, start, end string, ref time.Time) (Period, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start != "" || end != "" {
		if start == "" || end == "" {
			return Period{}, fmt.Errorf("%w: start y end deben indicarse juntos", domain.ErrInvalidPeriod)
		}
		s, err := time.Parse(DateLayout, start)
		if err != nil {
			return Period{}, fmt.Errorf("%w: start %q", domain.ErrInvalidPeriod, start)
		}
		e, err := time.Parse(DateLayout, end)
		if err != nil {
			return Period{}, fmt.Errorf("%w: end %q", domain.ErrInvalidPeriod, end)
		}
		return Range(s, e)
	}
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		token = Today
	}
	return Resolve(token, ref)
}

// Contains indica si la fecha de calendario de d cae dentro del período.
func (p Period) Contains(d time.Time) bool {
	if !p.Bounded {
		return true
	}
	day := Date(d)
	return !day.Before(p.Start) && !day.After(p.End)
}

// Date devuelve la fecha de calendario de t (en la zona de t) representada a las 00:00 UTC,
// que es como pgx lee las columnas DATE. Así las fechas de negocio se comparan como instantes.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
