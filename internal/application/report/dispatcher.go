package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/caisse-api/internal/application/dto"
	"github.com/jhoicas/caisse-api/internal/domain"
	"github.com/jhoicas/caisse-api/internal/domain/entity"
	"github.com/jhoicas/caisse-api/internal/domain/period"
	"github.com/jhoicas/caisse-api/internal/domain/repository"
)

// DispatchOutcome resultado de un envío correcto.
type DispatchOutcome struct {
	RunID    string
	RecordID int64
	SentAt   time.Time
	Report   dto.ReportDTO
}

// Dispatcher entrega el reporte y registra el envío en rapports_history.
// No reintenta: un envío fallido se relanza desde el planificador externo.
type Dispatcher struct {
	notifier   Notifier
	history    repository.ReportHistoryRepository
	from       string
	recipients []string
	clock      func() time.Time
}

// NewDispatcher construye el dispatcher.
func NewDispatcher(
	notifier Notifier,
	history repository.ReportHistoryRepository,
	from string,
	recipients []string,
	clock func() time.Time,
) *Dispatcher {
	if clock == nil {
		clock = time.Now
	}
	return &Dispatcher{
		notifier:   notifier,
		history:    history,
		from:       from,
		recipients: recipients,
		clock:      clock,
	}
}

// Dispatch envía doc a los destinatarios y, solo si el envío fue bien, inserta la fila de
// auditoría. Devuelve domain.ErrDeliveryFailed si falla el canal y domain.ErrPersistenceFailed
// si falla la auditoría (en ese caso el mensaje ya pudo llegar).
func (d *Dispatcher) Dispatch(ctx context.Context, rep dto.ReportDTO, doc Document) (*DispatchOutcome, error) {
	start, err := time.Parse(period.DateLayout, rep.PeriodStart)
	if err != nil {
		return nil, fmt.Errorf("%w: period_start %q", domain.ErrInvalidInput, rep.PeriodStart)
	}
	end, err := time.Parse(period.DateLayout, rep.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: period_end %q", domain.ErrInvalidInput, rep.PeriodEnd)
	}

	runID := uuid.NewString()
	msg := Message{
		From:        d.from,
		To:          append([]string(nil), d.recipients...),
		Subject:     doc.Subject,
		HTML:        doc.HTML,
		Attachments: doc.Attachments,
		Report:      rep,
	}
	if err := d.notifier.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("report: run %s: %w: %w", runID, domain.ErrDeliveryFailed, err)
	}
	sentAt := d.clock()

	rec := &entity.ReportRecord{
		ReportType:    rep.Type,
		PeriodStart:   start,
		PeriodEnd:     end,
		TotalSales:    rep.Totals.Sales,
		TotalExpenses: rep.Totals.Expenses,
		GeneratedAt:   sentAt,
	}
	if rec.ReportType == "" {
		rec.ReportType = entity.ReportTypeWeekly
	}
	if err := d.history.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("report: run %s: %w: %w", runID, domain.ErrPersistenceFailed, err)
	}

	return &DispatchOutcome{RunID: runID, RecordID: rec.ID, SentAt: sentAt, Report: rep}, nil
}

// HistoryUseCase lista los envíos registrados.
type HistoryUseCase struct {
	history repository.ReportHistoryRepository
}

// DefaultHistoryLimit filas devueltas cuando no se indica límite.
const DefaultHistoryLimit = 20

// MaxHistoryLimit tope de filas por consulta.
const MaxHistoryLimit = 200

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(history repository.ReportHistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{history: history}
}

// List devuelve los últimos envíos, el más reciente primero. limit <= 0 usa el valor por
// defecto y se recorta a MaxHistoryLimit.
func (uc *HistoryUseCase) List(ctx context.Context, limit int) ([]dto.ReportHistoryItemDTO, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	recs, err := uc.history.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReportHistoryItemDTO, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.NewReportHistoryItem(r))
	}
	return out, nil
}
