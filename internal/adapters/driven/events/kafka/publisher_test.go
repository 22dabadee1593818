package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/developertarun01/weyfar-cli/internal/core/domain"
)

// fakeWriter records written messages.
type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestNewPublisher(t *testing.T) {
	_, err := NewPublisher(nil, "")
	assert.ErrorIs(t, err, ErrNoBrokers)

	p, err := NewPublisher([]string{"localhost:9092"}, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTopic, p.Topic())

	p, err = NewPublisher([]string{"localhost:9092"}, "custom")
	require.NoError(t, err)
	assert.Equal(t, "custom", p.Topic())
}

func TestPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w, topic: DefaultTopic}
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), domain.SearchEvent{
		Type:        domain.SearchEventSucceeded,
		RequestID:   "req-1",
		Kind:        domain.SearchKindFlights,
		ResultCount: 3,
		Timestamp:   ts,
	})
	require.NoError(t, err)
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "req-1", string(msg.Key))
	assert.Equal(t, ts, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "search.succeeded", string(msg.Headers[0].Value))

	var decoded domain.SearchEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, domain.SearchKindFlights, decoded.Kind)
	assert.Equal(t, 3, decoded.ResultCount)
}

func TestPublisher_PublishError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker unreachable")}
	p := &Publisher{writer: w}

	err := p.Publish(context.Background(), domain.SearchEvent{Type: domain.SearchEventStarted})
	assert.ErrorContains(t, err, "broker unreachable")
}

func TestPublisher_Close(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
