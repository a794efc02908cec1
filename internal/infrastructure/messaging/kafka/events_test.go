package kafka

import (
	"context"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
)

func TestNewEventEnvelope(t *testing.T) {
	payload := TranslationCompletedPayload{
		RequestID:    "req-1",
		Text:         "ฉันไม่กินข้าว",
		Glosses:      []string{"ข้าว", "ฉัน", "กิน", "ไม่"},
		RuleID:       "svo-negated",
		TranslatedAt: time.Now().UTC(),
	}

	env, err := NewEventEnvelope("translation.completed", "apiserver", payload)
	require.NoError(t, err)
	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, "translation.completed", env.EventType)
	assert.Equal(t, "apiserver", env.Source)
	assert.Equal(t, "v1", env.SchemaVersion)
	assert.False(t, env.Timestamp.IsZero())

	var got TranslationCompletedPayload
	require.NoError(t, env.DecodePayload(&got))
	assert.Equal(t, payload.Glosses, got.Glosses)
	assert.Equal(t, payload.RuleID, got.RuleID)
}

func TestDecodePayload_Empty(t *testing.T) {
	env := &EventEnvelope{}
	var got TranslationCompletedPayload
	assert.Error(t, env.DecodePayload(&got))

	env.Payload = []byte("null")
	assert.Error(t, env.DecodePayload(&got))
}

func TestMessageToEventEnvelope(t *testing.T) {
	env, err := NewEventEnvelope("translation.completed", "apiserver", TranslationCompletedPayload{RequestID: "r"})
	require.NoError(t, err)
	msg, err := env.ToMessage(TopicTranslationCompleted)
	require.NoError(t, err)

	got, err := MessageToEventEnvelope(&Message{Value: msg.Value})
	require.NoError(t, err)
	assert.Equal(t, env.EventID, got.EventID)

	_, err = MessageToEventEnvelope(&Message{})
	assert.Error(t, err)

	_, err = MessageToEventEnvelope(&Message{Value: []byte("not json")})
	assert.Error(t, err)
}

func TestEnvelopeToMessage_Headers(t *testing.T) {
	env, err := NewEventEnvelope("translation.completed", "apiserver", TranslationCompletedPayload{})
	require.NoError(t, err)
	env.TraceID = "trace-1"

	msg, err := env.ToMessage(TopicTranslationCompleted)
	require.NoError(t, err)
	assert.Equal(t, TopicTranslationCompleted, msg.Topic)
	assert.Equal(t, "translation.completed", msg.Headers["event_type"])
	assert.Equal(t, "apiserver", msg.Headers["source_service"])
	assert.Equal(t, "trace-1", msg.Headers["trace_id"])
	assert.Equal(t, []byte(env.EventID), msg.Key)
}

type fakeConn struct {
	created    []kafkago.TopicConfig
	createErr  error
	partitions map[string][]kafkago.Partition
	closed     bool
}

func (c *fakeConn) CreateTopics(topics ...kafkago.TopicConfig) error {
	if c.createErr != nil {
		return c.createErr
	}
	c.created = append(c.created, topics...)
	return nil
}

func (c *fakeConn) ReadPartitions(topics ...string) ([]kafkago.Partition, error) {
	var out []kafkago.Partition
	for _, t := range topics {
		out = append(out, c.partitions[t]...)
	}
	return out, nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func TestTopicManager_CreateTopic(t *testing.T) {
	conn := &fakeConn{}
	m := &TopicManager{conn: conn, logger: logging.NewNopLogger()}

	err := m.CreateTopic(context.Background(), TopicConfig{
		Name:              TopicTranslationCompleted,
		NumPartitions:     6,
		ReplicationFactor: 1,
		RetentionMs:       1000,
	})
	require.NoError(t, err)
	require.Len(t, conn.created, 1)
	assert.Equal(t, TopicTranslationCompleted, conn.created[0].Topic)
	require.Len(t, conn.created[0].ConfigEntries, 1)
	assert.Equal(t, "retention.ms", conn.created[0].ConfigEntries[0].ConfigName)
}

func TestTopicManager_CreateTopic_AlreadyExists(t *testing.T) {
	conn := &fakeConn{
		createErr: assert.AnError,
		partitions: map[string][]kafkago.Partition{
			TopicTranslationCompleted: {{Topic: TopicTranslationCompleted}},
		},
	}
	m := &TopicManager{conn: conn, logger: logging.NewNopLogger()}

	err := m.CreateTopic(context.Background(), TopicConfig{
		Name:              TopicTranslationCompleted,
		NumPartitions:     6,
		ReplicationFactor: 1,
	})
	assert.NoError(t, err)
}

func TestTopicManager_CreateTopic_Validation(t *testing.T) {
	m := &TopicManager{conn: &fakeConn{}, logger: logging.NewNopLogger()}

	assert.Error(t, m.CreateTopic(context.Background(), TopicConfig{NumPartitions: 1, ReplicationFactor: 1}))
	assert.Error(t, m.CreateTopic(context.Background(), TopicConfig{Name: "t", ReplicationFactor: 1}))
	assert.Error(t, m.CreateTopic(context.Background(), TopicConfig{Name: "t", NumPartitions: 1}))
}

func TestTopicManager_EnsureDefaultTopics(t *testing.T) {
	conn := &fakeConn{}
	m := &TopicManager{conn: conn, logger: logging.NewNopLogger()}

	require.NoError(t, m.EnsureDefaultTopics(context.Background()))
	assert.Len(t, conn.created, len(DefaultTopics()))

	require.NoError(t, m.Close())
	assert.True(t, conn.closed)
}
