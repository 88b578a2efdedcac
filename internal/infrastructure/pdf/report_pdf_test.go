package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caisse-api/internal/application/dto"
	"github.com/jhoicas/caisse-api/internal/application/report"
)

func TestRenderReport_GeneraPDF(t *testing.T) {
	g := NewReportPDFGenerator(report.NewBuilder("fr-FR", "Restaurant Sidi Ali"))
	rep := dto.ReportDTO{
		Type:        "weekly",
		PeriodStart: "2026-10-11",
		PeriodEnd:   "2026-10-18",
		PeriodLabel: "11/10/2026 au 18/10/2026",
		Totals: dto.TotalsDTO{
			Sales:     decimal.RequireFromString("471.15"),
			Expenses:  decimal.RequireFromString("500"),
			NetProfit: decimal.RequireFromString("-28.85"),
		},
		SalesByChannel: []dto.ReportLineDTO{{Label: "dinner", Amount: decimal.RequireFromString("471.15")}},
	}

	data, err := g.RenderReport(context.Background(), rep)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "cabecera PDF")
	assert.Greater(t, len(data), 500)
}
