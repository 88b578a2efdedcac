// Package notify implementa report.Notifier sobre SMTP (gomail), AMQP (RabbitMQ) y el log.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/caisse-api/internal/application/report"
	"github.com/jhoicas/caisse-api/pkg/config"
	"github.com/jhoicas/caisse-api/pkg/logger"
)

var _ report.Notifier = (*SMTPNotifier)(nil)

// SMTPNotifier envía el reporte por correo: cuerpo HTML y adjuntos (PDF).
type SMTPNotifier struct {
	dialer *gomail.Dialer
	log    *logger.Logger
}

// NewSMTPNotifier construye el notificador con el servidor configurado.
func NewSMTPNotifier(cfg config.SMTPConfig, log *logger.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		log:    log,
	}
}

// Send abre una conexión SMTP por envío. gomail no acepta contexto: solo se comprueba antes
// de conectar.
func (n *SMTPNotifier) Send(ctx context.Context, msg report.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := buildMessage(msg)
	if err != nil {
		return err
	}
	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: enviar a %d destinatarios: %w", len(msg.To), err)
	}
	n.log.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("reporte enviado por correo")
	return nil
}

func buildMessage(msg report.Message) (*gomail.Message, error) {
	if len(msg.To) == 0 {
		return nil, errors.New("smtp: sin destinatarios")
	}
	if msg.From == "" {
		return nil, errors.New("smtp: remitente vacío")
	}
	m := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	for _, a := range msg.Attachments {
		data := a.Data
		m.Attach(a.Filename,
			gomail.SetHeader(map[string][]string{"Content-Type": {a.ContentType}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		)
	}
	return m, nil
}
