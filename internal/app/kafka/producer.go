package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tradesupport/internal/app/outbox"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует события заявок в топик Kafka. Без брокеров методы no-op.
type Producer struct {
	writer messageWriter
	topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return &Producer{}
	}
	return &Producer{
		topic: topic,
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

// Enabled есть ли куда писать
func (p *Producer) Enabled() bool {
	return p.writer != nil
}

type eventMessage struct {
	Event        outbox.Kind `json:"event"`
	RequestID    uint        `json:"request_id"`
	SerialNumber int         `json:"serial_number"`
	From         string      `json:"from,omitempty"`
	To           string      `json:"to,omitempty"`
	ActorID      uint        `json:"actor_id,omitempty"`
	ActorRole    string      `json:"actor_role,omitempty"`
	DocumentID   uint        `json:"document_id,omitempty"`
	Time         time.Time   `json:"time"`
}

func toMessage(event outbox.Event) (eventMessage, error) {
	msg := eventMessage{Event: event.Kind, RequestID: event.RequestID}
	switch p := event.Payload.(type) {
	case outbox.StateChanged:
		msg.SerialNumber = p.SerialNumber
		msg.From = p.From.String()
		msg.To = p.To.String()
		msg.ActorID = p.ActorID
		msg.ActorRole = p.ActorRole.String()
		msg.Time = p.Time
	case outbox.DocumentIssued:
		msg.SerialNumber = p.SerialNumber
		msg.DocumentID = p.DocumentID
		msg.Time = time.Now().UTC()
	default:
		return msg, fmt.Errorf("unexpected payload %T for %s", event.Payload, event.Kind)
	}
	return msg, nil
}

// Handle обработчик outbox, ключ сообщения id заявки чтобы события одной заявки шли по порядку
func (p *Producer) Handle(ctx context.Context, event outbox.Event) error {
	if p.writer == nil {
		return nil
	}
	msg, err := toMessage(event)
	if err != nil {
		return err
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("kafka: marshal event: %w", err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.RequestID), 10)),
		Value: body,
	})
	if err != nil {
		return fmt.Errorf("kafka: write event: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// ParseBrokers разбивает строку брокеров "host1:9092,host2:9092" на слайс
func ParseBrokers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
