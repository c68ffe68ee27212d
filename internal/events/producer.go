package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

const OrderRegisteredType = "order.registered"

type OrderRegistered struct {
	Type         string    `json:"type"`
	OrderID      uint      `json:"order_id"`
	PhoneNumber  string    `json:"phonenumber"`
	Address      string    `json:"address"`
	TotalCost    string    `json:"total_cost"`
	ItemCount    int       `json:"item_count"`
	RegisteredAt time.Time `json:"registered_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer messageWriter
}

func NewKafkaWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func NewProducer(writer *kafka.Writer) *Producer {
	return &Producer{writer: writer}
}

// PublishOrderRegistered keys the message by order id so that all events of
// one order land on the same partition.
func (p *Producer) PublishOrderRegistered(ctx context.Context, event OrderRegistered) error {
	event.Type = OrderRegisteredType
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.OrderID), 10)),
		Value: payload,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
