package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/caisse-api/internal/application/analytics"
	"github.com/jhoicas/caisse-api/internal/domain/period"
)

// WeeklyDays días cubiertos por el reporte semanal (hoy menos 7 hasta hoy).
const WeeklyDays = 7

// WeeklyReportUseCase encadena período, agregación, presentación y envío del reporte semanal.
type WeeklyReportUseCase struct {
	engine     *analytics.Engine
	builder    *Builder
	html       *HTMLRenderer
	pdf        PDFRenderer // opcional
	dispatcher *Dispatcher
	clock      func() time.Time
}

// NewWeeklyReportUseCase construye el caso de uso. pdf puede ser nil: el correo sale sin adjunto.
func NewWeeklyReportUseCase(
	engine *analytics.Engine,
	builder *Builder,
	pdf PDFRenderer,
	dispatcher *Dispatcher,
	clock func() time.Time,
) *WeeklyReportUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &WeeklyReportUseCase{
		engine:     engine,
		builder:    builder,
		html:       NewHTMLRenderer(builder),
		pdf:        pdf,
		dispatcher: dispatcher,
		clock:      clock,
	}
}

// Run genera y envía el reporte de los últimos 7 días. Dos ejecuciones sobre el mismo período
// producen dos envíos y dos filas de auditoría.
func (uc *WeeklyReportUseCase) Run(ctx context.Context) (*DispatchOutcome, error) {
	p := period.LastDays(WeeklyDays, uc.clock())

	res, err := uc.engine.Aggregate(ctx, p)
	if err != nil {
		return nil, err
	}
	rep := uc.builder.Build(res, p)

	doc, err := uc.html.Render(rep)
	if err != nil {
		return nil, err
	}
	if uc.pdf != nil {
		data, err := uc.pdf.RenderReport(ctx, rep)
		if err != nil {
			return nil, fmt.Errorf("report: render pdf: %w", err)
		}
		doc.Attachments = append(doc.Attachments, Attachment{
			Filename:    fmt.Sprintf("rapport-%s-%s.pdf", rep.PeriodStart, rep.PeriodEnd),
			ContentType: "application/pdf",
			Data:        data,
		})
	}

	return uc.dispatcher.Dispatch(ctx, rep, doc)
}
