package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"listing-site/internal/contextkeys"
	"listing-site/internal/core/domain"
	"listing-site/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// publisher - то, что нужно адаптеру от rabbitmq_producer.Publisher
type publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// ConsultingEventSink публикует каждую заявку на консультацию событием в RabbitMQ.
type ConsultingEventSink struct {
	producer   publisher
	routingKey string
	appID      string
}

func NewConsultingEventSink(producer publisher, routingKey, appID string) (*ConsultingEventSink, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &ConsultingEventSink{
		producer:   producer,
		routingKey: routingKey,
		appID:      appID,
	}, nil
}

func (s *ConsultingEventSink) Name() string { return "rabbitmq" }

func (s *ConsultingEventSink) Deliver(ctx context.Context, req domain.ConsultingRequest) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "ConsultingEventSink",
		"routing_key": s.routingKey,
		"request_id":  req.ID.String(),
	})

	body, err := json.Marshal(ConsultingRequestDTO{
		ID:          req.ID,
		Fields:      req.Fields,
		SubmittedAt: req.SubmittedAt,
		Source:      s.appID,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal consulting request: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    req.SubmittedAt,
		MessageId:    req.ID.String(),
		AppId:        s.appID,
		Headers:      make(amqp.Table),
	}
	if req.TraceID != "" {
		msg.Headers["x-trace-id"] = req.TraceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := s.producer.Publish(publishCtx, s.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish consulting request", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish consulting request %s: %w", req.ID, err)
	}

	adapterLogger.Debug("Consulting request published", nil)
	return nil
}
