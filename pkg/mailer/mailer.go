// Package mailer hands outbound transactional email to the delivery
// pipeline. The service publishes mail events to Kafka; a downstream
// worker renders and sends them.
package mailer

import (
	"context"

	"tripdey/pkg/kafka"
	"tripdey/pkg/logger"
)

const (
	EventVerificationCode = "mail.verification_code"
	EventPasswordReset    = "mail.password_reset"
	EventBookingCreated   = "mail.booking_created"
)

// Mail is the payload consumed by the delivery worker.
type Mail struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Mailer interface {
	Send(ctx context.Context, eventType string, mail Mail) error
}

// KafkaMailer publishes mail events keyed by recipient.
type KafkaMailer struct {
	producer *kafka.Producer
	from     string
	source   string
}

func NewKafkaMailer(producer *kafka.Producer, from, source string) *KafkaMailer {
	return &KafkaMailer{
		producer: producer,
		from:     from,
		source:   source,
	}
}

func (m *KafkaMailer) Send(ctx context.Context, eventType string, mail Mail) error {
	if mail.From == "" {
		mail.From = m.from
	}

	msg := kafka.NewMessage().
		WithKey(mail.To).
		WithValue(mail).
		WithEventType(eventType).
		WithSource(m.source).
		Build()

	return m.producer.Publish(ctx, msg)
}

// LogMailer writes mail to the log instead of sending it. Used in
// development and when no brokers are configured.
type LogMailer struct {
	log *logger.Logger
}

func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, eventType string, mail Mail) error {
	m.log.Info("Outbound mail",
		"event_type", eventType,
		"to", mail.To,
		"subject", mail.Subject,
		"body", mail.Body,
	)
	return nil
}
