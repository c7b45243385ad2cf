package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// MessageWriter часть kafka.Writer, которой пользуется издатель
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования ошибок асинхронной доставки
type Logger interface {
	Error(format string, v ...interface{})
}

// KafkaPublisher публикует события записей в Kafka
// Ключ сообщения = staffId, поэтому события одного мастера попадают в одну партицию и сохраняют порядок
type KafkaPublisher struct {
	writer MessageWriter
}

// NewKafkaPublisher создает издателя поверх асинхронного kafka.Writer.
// Publish только ставит сообщение в очередь writer'а, ошибки доставки попадают в лог через Completion.
func NewKafkaPublisher(brokers []string, topic string, log Logger) *KafkaPublisher {
	return NewPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           5 * time.Second,
		BatchTimeout:           50 * time.Millisecond,
		Async:                  true,
		Completion:             logFailedDelivery(log),
		AllowAutoTopicCreation: true,
	})
}

func logFailedDelivery(log Logger) func(messages []kafka.Message, err error) {
	return func(messages []kafka.Message, err error) {
		if err == nil {
			return
		}
		for _, m := range messages {
			log.Error("Kafka: failed to deliver event key=%s: %v", string(m.Key), err)
		}
	}
}

// NewPublisherWithWriter создает издателя с произвольным writer (используется в тестах)
func NewPublisherWithWriter(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// Publish сериализует событие в JSON и отправляет его с заголовками трейсинга
func (p *KafkaPublisher) Publish(ctx context.Context, event AppointmentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	carrier := &headerCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	msg := kafka.Message{
		Key:     []byte(event.StaffID),
		Value:   payload,
		Headers: append(carrier.headers, kafka.Header{Key: "event-type", Value: []byte(event.Type)}),
		Time:    event.OccurredAt,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher используется, когда Kafka выключена
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, AppointmentEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }

type headerCarrier struct {
	headers []kafka.Header
}

func (c *headerCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

func (c *headerCarrier) Set(key, value string) {
	for i := range c.headers {
		if c.headers[i].Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

var _ propagation.TextMapCarrier = (*headerCarrier)(nil)
