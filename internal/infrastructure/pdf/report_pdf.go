// Package pdf genera la versión PDF del reporte financiero con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Restaurante + título    │  Período                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SÍNTESIS: Recettes / Dépenses / Bénéfice net                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Service | Montant                                    │
//	│  TABLA: Catégorie | Montant                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER                                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/caisse-api/internal/application/dto"
	"github.com/jhoicas/caisse-api/internal/application/report"
)

var _ report.PDFRenderer = (*ReportPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 76, Green: 175, Blue: 80}
	colorNegative = &props.Color{Red: 244, Green: 67, Blue: 54}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite    = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReportPDFGenerator implementa report.PDFRenderer usando Maroto v2. Los textos e importes se
// formatean con el mismo Builder que el correo.
type ReportPDFGenerator struct {
	b *report.Builder
}

// NewReportPDFGenerator construye el generador.
func NewReportPDFGenerator(b *report.Builder) *ReportPDFGenerator {
	return &ReportPDFGenerator{b: b}
}

// RenderReport genera el PDF y devuelve sus bytes.
func (g *ReportPDFGenerator) RenderReport(_ context.Context, rep dto.ReportDTO) ([]byte, error) {
	t := textsFor(g.b.Language())
	title := t.title
	if name := g.b.RestaurantName(); name != "" {
		title += " - " + name
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle(title, true).
		WithAuthor(nonEmpty(g.b.RestaurantName(), "caisse-api"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, rep.PeriodLabel))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(rep, t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRow(t.byChannel))
	m.AddRows(tableHeaderRow(t.channelCol, t.amount))
	m.AddRows(g.tableRows(rep.SalesByChannel, t)...)

	m.AddRows(row.New(4))
	m.AddRows(sectionRow(t.byCategory))
	m.AddRows(tableHeaderRow(t.categoryCol, t.amount))
	m.AddRows(g.tableRows(rep.ExpensesByCategory, t)...)

	m.AddRows(row.New(6))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New(t.footer, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title, periodLabel string) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2}),
		),
		col.New(4).Add(
			text.New(periodLabel, props.Text{Size: 9, Align: align.Right, Color: colorGray, Top: 4}),
		),
	)
}

func (g *ReportPDFGenerator) summaryRow(rep dto.ReportDTO, t pdfTexts) core.Row {
	netColor := colorPrimary
	if rep.Totals.NetProfit.IsNegative() {
		netColor = colorNegative
	}
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Top: top})
	}
	value := func(s string, top float64, c *props.Color) core.Component {
		return text.New(s, props.Text{Size: 10, Align: align.Right, Top: top, Color: c})
	}
	return row.New(24).Add(
		col.New(6).Add(
			label(t.totalSales, 2),
			label(t.totalExpenses, 9),
			label(t.net, 16),
		),
		col.New(4).Add(
			value(g.b.FormatAmount(rep.Totals.Sales), 2, nil),
			value(g.b.FormatAmount(rep.Totals.Expenses), 9, nil),
			value(g.b.FormatAmount(rep.Totals.NetProfit), 16, netColor),
		),
		col.New(2),
	)
}

func sectionRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2}),
	))
}

// tableHeaderRow cabecera de tabla con fondo de color.
func tableHeaderRow(labelCol, amountCol string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a, Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h(labelCol, 8, align.Left),
		h(amountCol, 4, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *ReportPDFGenerator) tableRows(lines []dto.ReportLineDTO, t pdfTexts) []core.Row {
	if len(lines) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New(t.empty, props.Text{Size: 9, Color: colorGray, Top: 1.5, Left: 1}),
		))}
	}
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		out = append(out, row.New(7).Add(
			col.New(8).Add(text.New(l.Label, props.Text{Size: 9, Top: 1.5, Left: 1})),
			col.New(4).Add(text.New(g.b.FormatAmount(l.Amount), props.Text{Size: 9, Align: align.Right, Top: 1.5, Right: 1})),
		))
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

type pdfTexts struct {
	title         string
	totalSales    string
	totalExpenses string
	net           string
	byChannel     string
	channelCol    string
	byCategory    string
	categoryCol   string
	amount        string
	empty         string
	footer        string
}

func textsFor(lang string) pdfTexts {
	if lang == "fr" {
		return pdfTexts{
			title: "Récap Hebdomadaire", totalSales: "Recettes totales", totalExpenses: "Dépenses totales",
			net: "Bénéfice net", byChannel: "Recettes par Service", channelCol: "Service",
			byCategory: "Dépenses par Catégorie", categoryCol: "Catégorie", amount: "Montant",
			empty: "Aucune opération", footer: "Ce rapport est généré automatiquement chaque semaine.",
		}
	}
	return pdfTexts{
		title: "Weekly Recap", totalSales: "Total sales", totalExpenses: "Total expenses",
		net: "Net profit", byChannel: "Sales by Service", channelCol: "Service",
		byCategory: "Expenses by Category", categoryCol: "Category", amount: "Amount",
		empty: "No entries", footer: "This report is generated automatically every week.",
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
