package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishOrderRegistered(t *testing.T) {
	writer := &fakeWriter{}
	producer := &Producer{writer: writer}

	err := producer.PublishOrderRegistered(context.Background(), OrderRegistered{
		OrderID:   17,
		TotalCost: "25.00",
		ItemCount: 2,
	})
	require.NoError(t, err)
	require.Len(t, writer.messages, 1)
	assert.Equal(t, "17", string(writer.messages[0].Key))

	var decoded OrderRegistered
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &decoded))
	assert.Equal(t, OrderRegisteredType, decoded.Type)
	assert.Equal(t, uint(17), decoded.OrderID)
	assert.Equal(t, "25.00", decoded.TotalCost)

	require.NoError(t, producer.Close())
	assert.True(t, writer.closed)
}

func TestPublishOrderRegisteredWriterError(t *testing.T) {
	producer := &Producer{writer: &fakeWriter{err: errors.New("broker down")}}
	err := producer.PublishOrderRegistered(context.Background(), OrderRegistered{OrderID: 1})
	assert.EqualError(t, err, "broker down")
}

func TestNewKafkaWriter(t *testing.T) {
	writer := NewKafkaWriter("localhost:9092", "orders.registered")
	assert.Equal(t, "orders.registered", writer.Topic)
}
