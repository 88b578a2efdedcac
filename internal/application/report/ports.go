// Package report construye el reporte financiero de un período, lo presenta (HTML y PDF) y lo
// entrega por el canal de notificación configurado, dejando constancia en rapports_history.
package report

import (
	"context"

	"github.com/jhoicas/caisse-api/internal/application/dto"
)

// Attachment archivo adjunto al envío.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Document presentación renderizada del reporte.
type Document struct {
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Message lo que recibe el canal de notificación.
type Message struct {
	From        string
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
	Report      dto.ReportDTO // carga estructurada para canales que no son correo
}

// Notifier puerto de salida hacia el canal de notificación (SMTP, AMQP, log).
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// PDFRenderer genera la versión PDF del reporte.
type PDFRenderer interface {
	RenderReport(ctx context.Context, rep dto.ReportDTO) ([]byte, error)
}
