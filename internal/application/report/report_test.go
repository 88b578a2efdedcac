package report_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caisse-api/internal/application/analytics"
	"github.com/jhoicas/caisse-api/internal/application/dto"
	"github.com/jhoicas/caisse-api/internal/application/report"
	"github.com/jhoicas/caisse-api/internal/domain"
	"github.com/jhoicas/caisse-api/internal/domain/entity"
	"github.com/jhoicas/caisse-api/internal/domain/period"
	"github.com/jhoicas/caisse-api/internal/domain/repository"
	"github.com/jhoicas/caisse-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func day(m time.Month, d int) time.Time { return time.Date(2026, m, d, 0, 0, 0, 0, time.UTC) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeNotifier registra los mensajes y puede fallar a demanda.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []report.Message
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, msg report.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakePDF struct{}

func (fakePDF) RenderReport(_ context.Context, rep dto.ReportDTO) ([]byte, error) {
	return []byte("%PDF-1.3 " + rep.PeriodLabel), nil
}

// failingHistory simula un fallo al escribir la auditoría.
type failingHistory struct{}

func (failingHistory) Create(context.Context, *entity.ReportRecord) error {
	return errors.New("disk full")
}

func (failingHistory) List(context.Context, int) ([]*entity.ReportRecord, error) { return nil, nil }

var _ repository.ReportHistoryRepository = failingHistory{}

func weekResult() (*analytics.AggregateResult, period.Period) {
	p := period.LastDays(report.WeeklyDays, fixedNow)
	return &analytics.AggregateResult{
		Period:        p,
		TotalSales:    dec("471.154"),
		TotalExpenses: dec("120"),
		NetProfit:     dec("351.154"),
		SalesByChannel: []repository.GroupTotal{
			{Label: "dinner", Total: dec("230.75")},
			{Label: "lunch", Total: dec("150.504")},
			{Label: "takeout", Total: dec("89.90")},
		},
		ExpensesByCategory: []repository.GroupTotal{{Label: "Énergie", Total: dec("120")}},
	}, p
}

// ─── Builder ─────────────────────────────────────────────────────────────────

func TestBuilder_Build_ConLocaleFrances(t *testing.T) {
	res, p := weekResult()
	b := report.NewBuilder("fr-FR", "Restaurant Sidi Ali")

	rep := b.Build(res, p)

	assert.Equal(t, "weekly", rep.Type)
	assert.Equal(t, "2026-10-11", rep.PeriodStart)
	assert.Equal(t, "2026-10-18", rep.PeriodEnd)
	assert.Equal(t, "11/10/2026 au 18/10/2026", rep.PeriodLabel)
	assert.Equal(t, "471.15", rep.Totals.Sales.StringFixed(2))
	assert.Equal(t, "351.15", rep.Totals.NetProfit.StringFixed(2))
	require.Len(t, rep.SalesByChannel, 3)
	assert.Equal(t, "lunch", rep.SalesByChannel[1].Label, "conserva la etiqueta original")
	assert.True(t, rep.SalesByChannel[1].Amount.Equal(dec("150.50")))
}

func TestBuilder_Build_EsPuro(t *testing.T) {
	res, p := weekResult()
	b := report.NewBuilder("fr-FR", "Sidi Ali")
	assert.Equal(t, b.Build(res, p), b.Build(res, p))
}

func TestBuilder_PeriodLabel_SegunLocale(t *testing.T) {
	start, end := day(10, 11), day(10, 18)
	assert.Equal(t, "10/11/2026 to 10/18/2026", report.NewBuilder("en-US", "").PeriodLabel(start, end))
	assert.Equal(t, "2026-10-11/2026-10-18", report.NewBuilder("de-DE", "").PeriodLabel(start, end))
	assert.Equal(t, "11/10/2026 au 18/10/2026", report.NewBuilder("no es un locale", "").PeriodLabel(start, end))
}

func TestBuilder_FormatAmount(t *testing.T) {
	assert.Equal(t, "471,15 €", report.NewBuilder("fr-FR", "").FormatAmount(dec("471.154")))
	assert.Equal(t, "€89.90", report.NewBuilder("en-US", "").FormatAmount(dec("89.9")))
	assert.Equal(t, "-€5.00", report.NewBuilder("en-US", "").FormatAmount(dec("-5")))
	assert.Equal(t, "-0,50 €", report.NewBuilder("fr-FR", "").FormatAmount(dec("-0.499")))
}

func TestBuilder_FormatAmount_SinPerdidaDePrecision(t *testing.T) {
	// Más allá de 2^53: un float64 ya no distingue los céntimos.
	assert.Equal(t, "€12,345,678,901,234,567.89",
		report.NewBuilder("en-US", "").FormatAmount(dec("12345678901234567.89")))
	assert.Equal(t, "€1,000.05", report.NewBuilder("en-US", "").FormatAmount(dec("1000.045")))
}

// ─── HTML ────────────────────────────────────────────────────────────────────

func TestHTMLRenderer_Render(t *testing.T) {
	res, p := weekResult()
	b := report.NewBuilder("fr-FR", "Restaurant Sidi Ali")
	doc, err := report.NewHTMLRenderer(b).Render(b.Build(res, p))
	require.NoError(t, err)

	assert.Equal(t, "Récap Hebdo - 11/10/2026 au 18/10/2026", doc.Subject)
	assert.Contains(t, doc.HTML, "11/10/2026 au 18/10/2026")
	assert.Contains(t, doc.HTML, "Restaurant Sidi Ali")
	assert.Contains(t, doc.HTML, `class="positive"`)
	assert.Contains(t, doc.HTML, "471,15 €")
	assert.Contains(t, doc.HTML, "<td>dinner</td>")
	assert.Contains(t, doc.HTML, "<td>Énergie</td>")
	assert.Contains(t, doc.HTML, "&copy; 2026")
}

func TestHTMLRenderer_Render_BeneficioNegativoYSinLineas(t *testing.T) {
	p := period.LastDays(report.WeeklyDays, fixedNow)
	res := &analytics.AggregateResult{
		Period:        p,
		TotalSales:    decimal.Zero,
		TotalExpenses: dec("80"),
		NetProfit:     dec("-80"),
	}
	b := report.NewBuilder("fr-FR", "")
	doc, err := report.NewHTMLRenderer(b).Render(b.Build(res, p))
	require.NoError(t, err)
	assert.Contains(t, doc.HTML, `class="negative"`)
	assert.Equal(t, 2, strings.Count(doc.HTML, "Aucune opération"))
}

func TestHTMLRenderer_Render_EscapaEtiquetas(t *testing.T) {
	p := period.LastDays(report.WeeklyDays, fixedNow)
	res := &analytics.AggregateResult{
		Period:             p,
		TotalExpenses:      dec("1"),
		NetProfit:          dec("-1"),
		ExpensesByCategory: []repository.GroupTotal{{Label: "<script>x</script>", Total: dec("1")}},
	}
	b := report.NewBuilder("fr-FR", "")
	doc, err := report.NewHTMLRenderer(b).Render(b.Build(res, p))
	require.NoError(t, err)
	assert.NotContains(t, doc.HTML, "<script>")
	assert.Contains(t, doc.HTML, "&lt;script&gt;")
}

// ─── Dispatcher ──────────────────────────────────────────────────────────────

func TestDispatcher_Dispatch_EnviaYRegistra(t *testing.T) {
	res, p := weekResult()
	b := report.NewBuilder("fr-FR", "Sidi Ali")
	rep := b.Build(res, p)
	store := memory.NewStore(clock)
	notifier := &fakeNotifier{}
	d := report.NewDispatcher(notifier, store.Reports(), "caisse@example.com", []string{"a@example.com", "b@example.com"}, clock)

	out, err := d.Dispatch(context.Background(), rep, report.Document{Subject: "s", HTML: "<p>x</p>"})
	require.NoError(t, err)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, notifier.sent[0].To)
	assert.Equal(t, "caisse@example.com", notifier.sent[0].From)
	assert.NotEmpty(t, out.RunID)
	assert.Equal(t, fixedNow, out.SentAt)
	assert.Equal(t, rep, out.Report)

	recs, err := store.Reports().List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, out.RecordID, recs[0].ID)
	assert.Equal(t, "weekly", recs[0].ReportType)
	assert.Equal(t, day(10, 11), recs[0].PeriodStart)
	assert.Equal(t, day(10, 18), recs[0].PeriodEnd)
	assert.True(t, recs[0].TotalSales.Equal(dec("471.15")))
	assert.True(t, recs[0].TotalExpenses.Equal(dec("120")))
}

func TestDispatcher_Dispatch_FalloDeEntregaNoRegistra(t *testing.T) {
	res, p := weekResult()
	rep := report.NewBuilder("fr-FR", "").Build(res, p)
	store := memory.NewStore(clock)
	d := report.NewDispatcher(&fakeNotifier{err: errors.New("smtp 421")}, store.Reports(), "", []string{"a@example.com"}, clock)

	out, err := d.Dispatch(context.Background(), rep, report.Document{})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrDeliveryFailed)

	recs, err := store.Reports().List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recs, "sin entrega no hay fila de auditoría")
}

func TestDispatcher_Dispatch_FalloDeAuditoria(t *testing.T) {
	res, p := weekResult()
	rep := report.NewBuilder("fr-FR", "").Build(res, p)
	notifier := &fakeNotifier{}
	d := report.NewDispatcher(notifier, failingHistory{}, "", []string{"a@example.com"}, clock)

	out, err := d.Dispatch(context.Background(), rep, report.Document{})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrPersistenceFailed)
	assert.NotErrorIs(t, err, domain.ErrDeliveryFailed)
	assert.Len(t, notifier.sent, 1, "el mensaje ya salió")
}

// ─── Reporte semanal ─────────────────────────────────────────────────────────

func TestWeeklyReport_Run(t *testing.T) {
	store := memory.NewStore(clock)
	ctx := context.Background()
	for _, s := range []entity.Sale{
		{Date: day(10, 17), Channel: entity.SaleChannelLunch, Amount: dec("150.50")},
		{Date: day(10, 18), Channel: entity.SaleChannelDinner, Amount: dec("230.75")},
		{Date: day(10, 11), Channel: entity.SaleChannelTakeout, Amount: dec("89.90")},
		{Date: day(10, 10), Channel: entity.SaleChannelTakeout, Amount: dec("1000")}, // fuera
	} {
		s := s
		s.PaymentMethod = entity.SalePaymentCash
		require.NoError(t, store.Sales().Create(ctx, &s))
	}

	notifier := &fakeNotifier{}
	b := report.NewBuilder("fr-FR", "Sidi Ali")
	uc := report.NewWeeklyReportUseCase(
		analytics.NewEngine(store.Ledger()),
		b,
		fakePDF{},
		report.NewDispatcher(notifier, store.Reports(), "caisse@example.com", []string{"admin@example.com"}, clock),
		clock,
	)

	out, err := uc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, "471.15", out.Report.Totals.Sales.StringFixed(2))
	assert.Equal(t, "11/10/2026 au 18/10/2026", out.Report.PeriodLabel)

	require.Len(t, notifier.sent, 1)
	msg := notifier.sent[0]
	assert.Equal(t, "Récap Hebdo - 11/10/2026 au 18/10/2026", msg.Subject)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "rapport-2026-10-11-2026-10-18.pdf", msg.Attachments[0].Filename)
	assert.Equal(t, "application/pdf", msg.Attachments[0].ContentType)

	// Una segunda ejecución vuelve a enviar y a registrar.
	_, err = uc.Run(ctx)
	require.NoError(t, err)
	recs, err := store.Reports().List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestWeeklyReport_Run_AlmacenNoDisponible(t *testing.T) {
	store := memory.NewStore(clock)
	store.Fail(errors.New("down"))
	notifier := &fakeNotifier{}
	b := report.NewBuilder("fr-FR", "")
	uc := report.NewWeeklyReportUseCase(
		analytics.NewEngine(store.Ledger()), b, nil,
		report.NewDispatcher(notifier, store.Reports(), "", nil, clock), clock)

	_, err := uc.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Empty(t, notifier.sent)
}

// ─── Historial ───────────────────────────────────────────────────────────────

func TestHistory_List(t *testing.T) {
	store := memory.NewStore(clock)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Reports().Create(ctx, &entity.ReportRecord{
			ReportType: entity.ReportTypeWeekly, PeriodStart: day(10, 1+i), PeriodEnd: day(10, 8+i),
			TotalSales: dec("10.005"), TotalExpenses: dec("1"),
		}))
	}
	items, err := report.NewHistoryUseCase(store.Reports()).List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2026-10-03", items[0].PeriodStart, "el más reciente primero")
	assert.Equal(t, "10.01", items[0].TotalSales.StringFixed(2))
}
