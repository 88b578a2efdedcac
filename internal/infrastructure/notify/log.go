package notify

import (
	"context"

	"github.com/jhoicas/caisse-api/internal/application/report"
	"github.com/jhoicas/caisse-api/pkg/logger"
)

var _ report.Notifier = (*LogNotifier)(nil)

// LogNotifier escribe el envío en el log en lugar de entregarlo (desarrollo).
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(_ context.Context, msg report.Message) error {
	n.log.Info().
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Str("sales", msg.Report.Totals.Sales.StringFixed(2)).
		Str("expenses", msg.Report.Totals.Expenses.StringFixed(2)).
		Str("net_profit", msg.Report.Totals.NetProfit.StringFixed(2)).
		Int("attachments", len(msg.Attachments)).
		Msg("reporte semanal (canal log)")
	return nil
}
