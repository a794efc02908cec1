package kafka

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
)

type fakeReader struct {
	messages chan kafkago.Message

	mu        sync.Mutex
	committed []kafkago.Message
	closed    bool
}

func newFakeReader(msgs ...kafkago.Message) *fakeReader {
	r := &fakeReader{messages: make(chan kafkago.Message, len(msgs))}
	for _, m := range msgs {
		r.messages <- m
	}
	return r
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	select {
	case m := <-r.messages:
		return m, nil
	case <-ctx.Done():
		return kafkago.Message{}, ctx.Err()
	}
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *fakeReader) committedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

func testConsumerConfig() ConsumerConfig {
	return ConsumerConfig{
		Brokers:      []string{"localhost:9092"},
		GroupID:      "thsl-worker",
		Topics:       []string{TopicTranslationCompleted},
		MaxRetries:   2,
		RetryBackoff: time.Millisecond,
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestConsumer_ProcessesAndCommits(t *testing.T) {
	reader := newFakeReader(kafkago.Message{
		Topic: TopicTranslationCompleted,
		Value: []byte(`{"event_id":"e1"}`),
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte("translation.completed")},
		},
	})
	c := NewConsumerWithReader(reader, testConsumerConfig(), logging.NewNopLogger())

	var handled atomic.Int64
	c.Subscribe(TopicTranslationCompleted, func(ctx context.Context, msg *Message) error {
		assert.Equal(t, "translation.completed", msg.Headers["event_type"])
		handled.Add(1)
		return nil
	})

	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	waitFor(t, func() bool { return handled.Load() == 1 && reader.committedCount() == 1 })
	assert.Equal(t, int64(1), c.Metrics().MessagesProcessed.Load())
}

func TestConsumer_RetriesThenFails(t *testing.T) {
	reader := newFakeReader(kafkago.Message{Topic: TopicTranslationCompleted, Value: []byte("{}")})
	c := NewConsumerWithReader(reader, testConsumerConfig(), logging.NewNopLogger())

	var attempts atomic.Int64
	c.Subscribe(TopicTranslationCompleted, func(ctx context.Context, msg *Message) error {
		attempts.Add(1)
		return assert.AnError
	})

	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	// 1 initial attempt + 2 retries; offset committed regardless so the
	// group does not loop on a poisoned message.
	waitFor(t, func() bool { return reader.committedCount() == 1 })
	assert.Equal(t, int64(3), attempts.Load())
	assert.Equal(t, int64(1), c.Metrics().MessagesFailed.Load())
	assert.Equal(t, int64(2), c.Metrics().MessagesRetried.Load())
}

func TestConsumer_DeadLettersAfterRetries(t *testing.T) {
	reader := newFakeReader(kafkago.Message{
		Topic: TopicTranslationCompleted,
		Key:   []byte("evt-9"),
		Value: []byte(`{"event_id":"e9"}`),
	})
	cfg := testConsumerConfig()
	cfg.DeadLetterTopic = TopicDeadLetter

	c := NewConsumerWithReader(reader, cfg, logging.NewNopLogger())
	dlWriter := &fakeWriter{}
	c.deadLetterProducer = NewProducerWithWriter(dlWriter, logging.NewNopLogger())

	c.Subscribe(TopicTranslationCompleted, func(ctx context.Context, msg *Message) error {
		return assert.AnError
	})

	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	waitFor(t, func() bool { return len(dlWriter.written()) == 1 })
	dl := dlWriter.written()[0]
	assert.Equal(t, TopicDeadLetter, dl.Topic)
	assert.Equal(t, []byte("evt-9"), dl.Key)

	headers := make(map[string]string)
	for _, h := range dl.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, TopicTranslationCompleted, headers["original_topic"])
	assert.NotEmpty(t, headers["error_message"])
	assert.Equal(t, int64(1), c.Metrics().MessagesDeadLettered.Load())
}

func TestConsumer_NoHandlerStillCommits(t *testing.T) {
	reader := newFakeReader(kafkago.Message{Topic: "unrelated.topic", Value: []byte("{}")})
	c := NewConsumerWithReader(reader, testConsumerConfig(), logging.NewNopLogger())

	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	waitFor(t, func() bool { return reader.committedCount() == 1 })
}

func TestConsumer_StartTwice(t *testing.T) {
	reader := newFakeReader()
	c := NewConsumerWithReader(reader, testConsumerConfig(), logging.NewNopLogger())

	require.NoError(t, c.Start(context.Background()))
	assert.ErrorIs(t, c.Start(context.Background()), ErrAlreadyRunning)

	require.NoError(t, c.Close())
	assert.True(t, func() bool { reader.mu.Lock(); defer reader.mu.Unlock(); return reader.closed }())
}

func TestValidateConsumerConfig(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*ConsumerConfig)
		wantErr bool
	}{
		{"valid", func(c *ConsumerConfig) {}, false},
		{"no brokers", func(c *ConsumerConfig) { c.Brokers = nil }, true},
		{"no group", func(c *ConsumerConfig) { c.GroupID = "" }, true},
		{"no topics", func(c *ConsumerConfig) { c.Topics = nil }, true},
		{"bad offset reset", func(c *ConsumerConfig) { c.AutoOffsetReset = "middle" }, true},
		{"latest offset reset", func(c *ConsumerConfig) { c.AutoOffsetReset = "latest" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConsumerConfig()
			tc.mutate(&cfg)
			err := validateConsumerConfig(cfg)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
