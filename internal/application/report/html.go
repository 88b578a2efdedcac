package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/jhoicas/caisse-api/internal/application/dto"
	"github.com/jhoicas/caisse-api/internal/domain/period"
)

// labels textos fijos del documento por idioma.
type labels struct {
	Subject       string
	Title         string
	Summary       string
	TotalSales    string
	TotalExpenses string
	Net           string
	ByChannel     string
	ChannelCol    string
	ByCategory    string
	CategoryCol   string
	Amount        string
	Empty         string
	Automatic     string
	Footer        string
}

var labelsByLang = map[string]labels{
	"fr": {
		Subject: "Récap Hebdo", Title: "Récap Hebdomadaire", Summary: "Synthèse Financière",
		TotalSales: "Recettes totales", TotalExpenses: "Dépenses totales", Net: "Bénéfice net",
		ByChannel: "Recettes par Service", ChannelCol: "Service",
		ByCategory: "Dépenses par Catégorie", CategoryCol: "Catégorie", Amount: "Montant",
		Empty: "Aucune opération", Automatic: "Ce rapport est généré automatiquement chaque semaine.",
		Footer: "Gestion de Caisse",
	},
	"en": {
		Subject: "Weekly Recap", Title: "Weekly Recap", Summary: "Financial Summary",
		TotalSales: "Total sales", TotalExpenses: "Total expenses", Net: "Net profit",
		ByChannel: "Sales by Service", ChannelCol: "Service",
		ByCategory: "Expenses by Category", CategoryCol: "Category", Amount: "Amount",
		Empty: "No entries", Automatic: "This report is generated automatically every week.",
		Footer: "Cash Register",
	},
}

func labelsFor(lang string) labels {
	if l, ok := labelsByLang[lang]; ok {
		return l
	}
	return labelsByLang["en"]
}

const reportHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
  .container { max-width: 600px; margin: 0 auto; padding: 20px; }
  .header { background: #4CAF50; color: white; padding: 20px; text-align: center; }
  .card { background: #f9f9f9; border: 1px solid #ddd; padding: 15px; margin: 15px 0; border-radius: 5px; }
  .positive { color: #4CAF50; }
  .negative { color: #f44336; }
  table { width: 100%; border-collapse: collapse; }
  th, td { padding: 8px; text-align: left; border-bottom: 1px solid #ddd; }
  .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>{{.L.Title}}{{if .Restaurant}} - {{.Restaurant}}{{end}}</h1>
    <p>{{.Report.PeriodLabel}}</p>
  </div>
  <div class="card">
    <h2>{{.L.Summary}}</h2>
    <p><strong>{{.L.TotalSales}}:</strong> {{.Sales}}</p>
    <p><strong>{{.L.TotalExpenses}}:</strong> {{.Expenses}}</p>
    <p><strong>{{.L.Net}}:</strong> <span class="{{.NetClass}}">{{.Net}}</span></p>
  </div>
  <div class="card">
    <h2>{{.L.ByChannel}}</h2>
    <table>
      <tr><th>{{.L.ChannelCol}}</th><th>{{.L.Amount}}</th></tr>
      {{range .Channels}}<tr><td>{{.Label}}</td><td>{{.Amount}}</td></tr>
      {{else}}<tr><td colspan="2">{{.L.Empty}}</td></tr>
      {{end}}
    </table>
  </div>
  <div class="card">
    <h2>{{.L.ByCategory}}</h2>
    <table>
      <tr><th>{{.L.CategoryCol}}</th><th>{{.L.Amount}}</th></tr>
      {{range .Categories}}<tr><td>{{.Label}}</td><td>{{.Amount}}</td></tr>
      {{else}}<tr><td colspan="2">{{.L.Empty}}</td></tr>
      {{end}}
    </table>
  </div>
  <div class="footer">
    <p>{{.L.Automatic}}</p>
    <p>&copy; {{.Year}}{{if .Restaurant}} {{.Restaurant}}{{end}} - {{.L.Footer}}</p>
  </div>
</div>
</body>
</html>
`

var reportTmpl = template.Must(template.New("report").Parse(reportHTML))

type htmlLine struct {
	Label  string
	Amount string
}

type htmlView struct {
	L          labels
	Restaurant string
	Report     dto.ReportDTO
	Sales      string
	Expenses   string
	Net        string
	NetClass   string
	Channels   []htmlLine
	Categories []htmlLine
	Year       int
}

// HTMLRenderer presenta un ReportDTO como documento HTML para el correo.
type HTMLRenderer struct {
	b *Builder
}

// NewHTMLRenderer usa el locale y el nombre del restaurante de b.
func NewHTMLRenderer(b *Builder) *HTMLRenderer {
	return &HTMLRenderer{b: b}
}

// Subject asunto del envío: "Récap Hebdo - 11/10/2026 au 18/10/2026".
func (r *HTMLRenderer) Subject(rep dto.ReportDTO) string {
	return labelsFor(r.b.Language()).Subject + " - " + rep.PeriodLabel
}

// Render genera el documento. El año del pie sale del final del período, no del reloj.
func (r *HTMLRenderer) Render(rep dto.ReportDTO) (Document, error) {
	l := labelsFor(r.b.Language())
	view := htmlView{
		L:          l,
		Restaurant: r.b.RestaurantName(),
		Report:     rep,
		Sales:      r.b.FormatAmount(rep.Totals.Sales),
		Expenses:   r.b.FormatAmount(rep.Totals.Expenses),
		Net:        r.b.FormatAmount(rep.Totals.NetProfit),
		NetClass:   "positive",
		Channels:   r.htmlLines(rep.SalesByChannel),
		Categories: r.htmlLines(rep.ExpensesByCategory),
	}
	if rep.Totals.NetProfit.IsNegative() {
		view.NetClass = "negative"
	}
	if end, err := time.Parse(period.DateLayout, rep.PeriodEnd); err == nil {
		view.Year = end.Year()
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, view); err != nil {
		return Document{}, fmt.Errorf("report: render html: %w", err)
	}
	return Document{Subject: r.Subject(rep), HTML: buf.String()}, nil
}

func (r *HTMLRenderer) htmlLines(in []dto.ReportLineDTO) []htmlLine {
	out := make([]htmlLine, 0, len(in))
	for _, ln := range in {
		out = append(out, htmlLine{Label: ln.Label, Amount: r.b.FormatAmount(ln.Amount)})
	}
	return out
}
