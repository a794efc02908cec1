package kafka

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/thaisign/thsl-translate/internal/config"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

var ErrProducerClosed = apperrors.New(apperrors.ErrCodeInternal, "kafka producer is closed")

const maxMessageBytes = 1024 * 1024

// WriterInterface abstracts kafka.Writer for testing.
type WriterInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ProducerMetrics holds producer counters.
type ProducerMetrics struct {
	MessagesSent   atomic.Int64
	MessagesFailed atomic.Int64
	BytesSent      atomic.Int64
}

// Producer publishes translation events.
type Producer struct {
	writer  WriterInterface
	logger  logging.Logger
	closed  atomic.Bool
	metrics *ProducerMetrics
}

func NewProducer(cfg config.KafkaConfig, logger logging.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "kafka brokers required")
	}

	maxAttempts := cfg.ProducerRetries + 1
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	batchSize := cfg.BatchSize
	if batchSize == 0 {
		batchSize = 100
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 10 * time.Second
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		MaxAttempts:  maxAttempts,
		BatchSize:    batchSize,
		BatchTimeout: time.Second,
		WriteTimeout: writeTimeout,
		RequiredAcks: kafka.RequireOne,
	}

	return &Producer{
		writer:  writer,
		logger:  logger,
		metrics: &ProducerMetrics{},
	}, nil
}

// NewProducerWithWriter wraps an existing writer. Used by tests.
func NewProducerWithWriter(writer WriterInterface, logger logging.Logger) *Producer {
	return &Producer{writer: writer, logger: logger, metrics: &ProducerMetrics{}}
}

func (p *Producer) Publish(ctx context.Context, msg *ProducerMessage) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}
	if msg.Topic == "" {
		return apperrors.New(apperrors.ErrCodeValidation, "message topic required")
	}
	if len(msg.Value) == 0 {
		return apperrors.New(apperrors.ErrCodeValidation, "message value required")
	}
	if len(msg.Value) > maxMessageBytes {
		return apperrors.New(apperrors.ErrCodeValidation, "message too large")
	}

	start := time.Now()
	if err := p.writer.WriteMessages(ctx, toKafkaMessage(msg)); err != nil {
		p.metrics.MessagesFailed.Add(1)
		return apperrors.Wrap(err, apperrors.ErrCodeExternalService, "failed to publish message")
	}

	p.metrics.MessagesSent.Add(1)
	p.metrics.BytesSent.Add(int64(len(msg.Value)))

	p.logger.Debug("Message published",
		logging.String("topic", msg.Topic),
		logging.Int64("latency_ms", time.Since(start).Milliseconds()))
	return nil
}

// PublishEvent wraps the envelope into a message and publishes it.
func (p *Producer) PublishEvent(ctx context.Context, topic string, env *EventEnvelope) error {
	msg, err := env.ToMessage(topic)
	if err != nil {
		return err
	}
	return p.Publish(ctx, msg)
}

// PublishAsync fires the publish on its own goroutine. Translation
// responses never wait for the broker.
func (p *Producer) PublishAsync(ctx context.Context, msg *ProducerMessage) {
	go func() {
		if err := p.Publish(ctx, msg); err != nil {
			p.logger.Warn("Async publish failed",
				logging.String("topic", msg.Topic),
				logging.Err(err))
		}
	}()
}

func (p *Producer) Metrics() (sent, failed, bytes int64) {
	return p.metrics.MessagesSent.Load(), p.metrics.MessagesFailed.Load(), p.metrics.BytesSent.Load()
}

func (p *Producer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := p.writer.Close()
	p.logger.Info("Kafka producer closed", logging.Int64("sent", p.metrics.MessagesSent.Load()))
	return err
}

func toKafkaMessage(msg *ProducerMessage) kafka.Message {
	headers := make([]kafka.Header, 0, len(msg.Headers))
	for k, v := range msg.Headers {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	ts := msg.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return kafka.Message{
		Topic:   msg.Topic,
		Key:     msg.Key,
		Value:   msg.Value,
		Headers: headers,
		Time:    ts,
	}
}
