package notify

import (
	"fmt"

	"github.com/jhoicas/caisse-api/internal/application/report"
	"github.com/jhoicas/caisse-api/pkg/config"
	"github.com/jhoicas/caisse-api/pkg/logger"
)

// FromConfig elige el notificador según REPORT_CHANNEL. El closer libera la conexión AMQP;
// para los demás canales no hace nada.
func FromConfig(cfg *config.Config, log *logger.Logger) (report.Notifier, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Report.Channel {
	case config.ChannelSMTP:
		return NewSMTPNotifier(cfg.SMTP, log), noop, nil
	case config.ChannelAMQP:
		n, err := NewAMQPNotifier(cfg.AMQP, log)
		if err != nil {
			return nil, noop, err
		}
		return n, n.Close, nil
	case config.ChannelLog, "":
		return NewLogNotifier(log), noop, nil
	default:
		return nil, noop, fmt.Errorf("canal de reporte desconocido: %q", cfg.Report.Channel)
	}
}
