package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"listing-site/internal/core/domain"
	"listing-site/internal/core/port"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	routingKey string
	msg        amqp.Publishing
	deadline   bool
	err        error
}

func (f *fakePublisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	f.routingKey = routingKey
	f.msg = msg
	_, f.deadline = ctx.Deadline()
	return f.err
}

func TestConsultingEventSinkPublishes(t *testing.T) {
	pub := &fakePublisher{}
	sink, err := NewConsultingEventSink(pub, "consulting.requests", "listing-site")
	require.NoError(t, err)
	assert.Equal(t, "rabbitmq", sink.Name())

	req := domain.ConsultingRequest{
		ID:          uuid.New(),
		Fields:      map[string][]string{"phone": {"0900"}},
		SubmittedAt: time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC),
		TraceID:     "trace-9",
	}
	require.NoError(t, sink.Deliver(context.Background(), req))

	assert.Equal(t, "consulting.requests", pub.routingKey)
	assert.True(t, pub.deadline)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)
	assert.Equal(t, "application/json", pub.msg.ContentType)
	assert.Equal(t, "trace-9", pub.msg.Headers["x-trace-id"])
	assert.Equal(t, req.ID.String(), pub.msg.MessageId)

	var dto ConsultingRequestDTO
	require.NoError(t, json.Unmarshal(pub.msg.Body, &dto))
	assert.Equal(t, req.ID, dto.ID)
	assert.Equal(t, []string{"0900"}, dto.Fields["phone"])
	assert.Equal(t, "listing-site", dto.Source)
}

func TestConsultingEventSinkWrapsPublishError(t *testing.T) {
	cause := errors.New("channel closed")
	sink, err := NewConsultingEventSink(&fakePublisher{err: cause}, "k", "")
	require.NoError(t, err)

	err = sink.Deliver(context.Background(), domain.ConsultingRequest{ID: uuid.New()})
	assert.ErrorIs(t, err, cause)
}

func TestNewConsultingEventSinkValidates(t *testing.T) {
	_, err := NewConsultingEventSink(nil, "k", "")
	assert.Error(t, err)
	_, err = NewConsultingEventSink(&fakePublisher{}, "", "")
	assert.Error(t, err)
}

type capturingLogger struct {
	port.LoggerPort
	msg    string
	fields port.Fields
	err    error
}

func (c *capturingLogger) Info(msg string, fields port.Fields) { c.msg, c.fields = msg, fields }
func (c *capturingLogger) Error(msg string, err error, fields port.Fields) {
	c.msg, c.err, c.fields = msg, err, fields
}

func TestPkgLoggerBridgePairsKeysAndValues(t *testing.T) {
	l := &capturingLogger{}
	bridge := NewPkgLoggerBridge(l)

	bridge.Info("connected", "url", "amqp://x", 42, "ignored", "dangling")
	assert.Equal(t, "connected", l.msg)
	assert.Equal(t, port.Fields{"url": "amqp://x"}, l.fields)

	cause := errors.New("x")
	bridge.Error(cause, "failed", "attempt", 3)
	assert.Equal(t, cause, l.err)
	assert.Equal(t, 3, l.fields["attempt"])
}
