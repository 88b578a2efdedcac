// Package filter construye condiciones de consulta componibles a partir de un período y de
// filtros simples. El mismo Set se traduce a SQL parametrizado (adaptador PostgreSQL) o se
// evalúa en memoria, de modo que totales, agrupaciones y listados comparten exactamente el
// mismo criterio.
package filter

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/jhoicas/caisse-api/internal/domain/period"
)

// Column columna filtrable. Solo las constantes declaradas aquí llegan al SQL.
type Column string

const (
	ColDate          Column = "date"
	ColChannel       Column = "channel"
	ColCategory      Column = "category"
	ColPaymentMethod Column = "payment_method"
	ColUrgent        Column = "urgent"
)

// Op operador de comparación.
type Op string

const (
	OpEq  Op = "="
	OpGte Op = ">="
	OpLte Op = "<="
)

// Predicate condición atómica: Column Op Value.
type Predicate struct {
	Column Column
	Op     Op
	Value  any
}

// Eq predicado de igualdad.
func Eq(col Column, v any) Predicate { return Predicate{Column: col, Op: OpEq, Value: v} }

// Gte predicado mayor o igual.
func Gte(col Column, v any) Predicate { return Predicate{Column: col, Op: OpGte, Value: v} }

// Lte predicado menor o igual.
func Lte(col Column, v any) Predicate { return Predicate{Column: col, Op: OpLte, Value: v} }

// Set conjunción inmutable de predicados. El valor cero no filtra nada.
type Set struct {
	preds []Predicate
}

// New crea un Set con los predicados dados.
func New(preds ...Predicate) Set {
	return Set{}.And(preds...)
}

// ForPeriod devuelve date >= start AND date <= end, o un Set vacío si el período no tiene límites.
func ForPeriod(p period.Period) Set {
	if !p.Bounded {
		return Set{}
	}
	return New(Gte(ColDate, p.Start), Lte(ColDate, p.End))
}

// And devuelve un nuevo Set con los predicados añadidos; el receptor no cambia.
func (s Set) And(preds ...Predicate) Set {
	out := make([]Predicate, 0, len(s.preds)+len(preds))
	out = append(out, s.preds...)
	out = append(out, preds...)
	return Set{preds: out}
}

// Predicates copia de los predicados.
func (s Set) Predicates() []Predicate {
	return append([]Predicate(nil), s.preds...)
}

// Empty indica si el Set no filtra.
func (s Set) Empty() bool { return len(s.preds) == 0 }

// SQL traduce el Set a "WHERE ..." con parámetros posicionales a partir de $firstArg.
// Los valores nunca se interpolan en el texto de la consulta.
func (s Set) SQL(firstArg int) (string, []any) {
	if len(s.preds) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(s.preds))
	args := make([]any, 0, len(s.preds))
	for i, p := range s.preds {
		parts = append(parts, fmt.Sprintf("%s %s $%d", p.Column, p.Op, firstArg+i))
		args = append(args, sqlValue(p.Value))
	}
	return "WHERE " + strings.Join(parts, " AND "), args
}

// Match evalúa el Set sobre un registro. fields devuelve el valor de cada columna.
func (s Set) Match(fields func(col Column) any) bool {
	for _, p := range s.preds {
		if !p.match(fields(p.Column)) {
			return false
		}
	}
	return true
}

func (p Predicate) match(actual any) bool {
	want, got := normalize(p.Value), normalize(actual)
	switch w := want.(type) {
	case time.Time:
		g, ok := got.(time.Time)
		if !ok {
			return false
		}
		switch p.Op {
		case OpGte:
			return !g.Before(w)
		case OpLte:
			return !g.After(w)
		default:
			return g.Equal(w)
		}
	case string:
		g, ok := got.(string)
		if !ok {
			return false
		}
		switch p.Op {
		case OpGte:
			return g >= w
		case OpLte:
			return g <= w
		default:
			return g == w
		}
	default:
		return p.Op == OpEq && want == got
	}
}

// normalize reduce los tipos con base string (canales, medios de pago) a string.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	if _, ok := v.(time.Time); ok {
		return v
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return v
}

func sqlValue(v any) any {
	if s, ok := normalize(v).(string); ok {
		return s
	}
	return v
}
