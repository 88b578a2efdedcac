package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/caisse-api/internal/application/dto"
	"github.com/jhoicas/caisse-api/internal/application/report"
	"github.com/jhoicas/caisse-api/pkg/config"
	"github.com/jhoicas/caisse-api/pkg/logger"
)

var _ report.Notifier = (*AMQPNotifier)(nil)

// ReportMessageType tipo del mensaje publicado.
const ReportMessageType = "report.weekly"

const publishTimeout = 5 * time.Second

// ReportMessage cuerpo JSON publicado para el mailer aguas abajo.
type ReportMessage struct {
	Type        string              `json:"type"`
	From        string              `json:"from"`
	To          []string            `json:"to"`
	Subject     string              `json:"subject"`
	HTML        string              `json:"html"`
	Report      dto.ReportDTO       `json:"report"`
	Attachments []MessageAttachment `json:"attachments,omitempty"`
}

// MessageAttachment adjunto; Data se serializa en base64.
type MessageAttachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// NewReportMessage arma el cuerpo a publicar.
func NewReportMessage(msg report.Message) ReportMessage {
	out := ReportMessage{
		Type:    ReportMessageType,
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Report:  msg.Report,
	}
	for _, a := range msg.Attachments {
		out.Attachments = append(out.Attachments, MessageAttachment{
			Filename: a.Filename, ContentType: a.ContentType, Data: a.Data,
		})
	}
	return out
}

// AMQPNotifier publica el reporte en un exchange de RabbitMQ.
type AMQPNotifier struct {
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	exchange   string
	routingKey string
	log        *logger.Logger
}

// NewAMQPNotifier conecta con el broker y declara el exchange (direct, durable).
func NewAMQPNotifier(cfg config.AMQPConfig, log *logger.Logger) (*AMQPNotifier, error) {
	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	err = channel.ExchangeDeclare(
		cfg.Exchange, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPNotifier{
		conn:       conn,
		channel:    channel,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		log:        log,
	}, nil
}

// Send publica el mensaje como persistente con un message id nuevo.
func (n *AMQPNotifier) Send(ctx context.Context, msg report.Message) error {
	body, err := json.Marshal(NewReportMessage(msg))
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	id := uuid.NewString()
	err = n.channel.PublishWithContext(
		ctx,
		n.exchange,   // exchange
		n.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    id,
			Type:         ReportMessageType,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	n.log.Info().
		Str("message_id", id).
		Str("exchange", n.exchange).
		Str("routing_key", n.routingKey).
		Str("period", msg.Report.PeriodLabel).
		Msg("reporte publicado")
	return nil
}

// Close cierra canal y conexión.
func (n *AMQPNotifier) Close() error {
	if n.channel != nil {
		n.channel.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
