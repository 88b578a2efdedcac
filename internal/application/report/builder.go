package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/caisse-api/internal/application/analytics"
	"github.com/jhoicas/caisse-api/internal/application/dto"
	"github.com/jhoicas/caisse-api/internal/domain/entity"
	"github.com/jhoicas/caisse-api/internal/domain/period"
	"github.com/jhoicas/caisse-api/internal/domain/repository"
)

// DefaultLocale locale del restaurante cuando no se configura otro.
const DefaultLocale = "fr-FR"

// Builder convierte un AggregateResult en un ReportDTO. Es puro: mismo resultado y período,
// mismo reporte.
type Builder struct {
	tag            language.Tag
	decimalSep     string
	restaurantName string
}

// NewBuilder construye el builder. Un locale que no se puede interpretar cae a fr-FR.
func NewBuilder(locale, restaurantName string) *Builder {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil || locale == "" {
		tag = language.MustParse(DefaultLocale)
	}
	// 1.5 es exacto en binario: de ahí sale el separador decimal del locale.
	sep := strings.Trim(message.NewPrinter(tag).Sprint(number.Decimal(1.5, number.Scale(1))), "15")
	if sep == "" {
		sep = "."
	}
	return &Builder{tag: tag, decimalSep: sep, restaurantName: strings.TrimSpace(restaurantName)}
}

// RestaurantName nombre mostrado en los documentos.
func (b *Builder) RestaurantName() string { return b.restaurantName }

// Build arma el reporte semanal de p con los agregados de res.
func (b *Builder) Build(res *analytics.AggregateResult, p period.Period) dto.ReportDTO {
	out := dto.ReportDTO{
		Type: entity.ReportTypeWeekly,
		Totals: dto.TotalsDTO{
			Sales:     res.TotalSales.Round(2),
			Expenses:  res.TotalExpenses.Round(2),
			NetProfit: res.NetProfit.Round(2),
		},
		SalesByChannel:     lines(res.SalesByChannel),
		ExpensesByCategory: lines(res.ExpensesByCategory),
	}
	if p.Bounded {
		out.PeriodStart = p.Start.Format(period.DateLayout)
		out.PeriodEnd = p.End.Format(period.DateLayout)
		out.PeriodLabel = b.PeriodLabel(p.Start, p.End)
	}
	return out
}

func lines(groups []repository.GroupTotal) []dto.ReportLineDTO {
	out := make([]dto.ReportLineDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.ReportLineDTO{Label: g.Label, Amount: g.Total.Round(2)})
	}
	return out
}

// PeriodLabel "dd/mm/yyyy au dd/mm/yyyy" en francés, "mm/dd/yyyy to mm/dd/yyyy" en inglés,
// ISO 8601 (start/end) en cualquier otro idioma.
func (b *Builder) PeriodLabel(start, end time.Time) string {
	base, _ := b.tag.Base()
	switch base.String() {
	case "fr":
		return start.Format("02/01/2006") + " au " + end.Format("02/01/2006")
	case "en":
		return start.Format("01/02/2006") + " to " + end.Format("01/02/2006")
	default:
		return start.Format(period.DateLayout) + "/" + end.Format(period.DateLayout)
	}
}

// FormatAmount importe con separadores del locale y el símbolo del euro: "471,15 €" en fr-FR.
func (b *Builder) FormatAmount(d decimal.Decimal) string {
	d = d.Round(2)
	abs := d.Abs()
	cents := abs.StringFixed(2)
	// Parte entera agrupada según el locale; céntimos tomados del decimal.
	s := message.NewPrinter(b.tag).Sprint(number.Decimal(abs.IntPart())) + b.decimalSep + cents[len(cents)-2:]
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	base, _ := b.tag.Base()
	if base.String() == "en" {
		return sign + "€" + s
	}
	return sign + s + " €"
}

// Language idioma base del locale configurado ("fr", "en", ...).
func (b *Builder) Language() string {
	base, _ := b.tag.Base()
	return base.String()
}
