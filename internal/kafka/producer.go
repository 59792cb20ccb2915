package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"restaurant-panel/internal/config"
	"restaurant-panel/internal/logger"
)

// CompletionEvent is published whenever a record is completed from the
// dashboard, for downstream notification services.
type CompletionEvent struct {
	Collection  string    `json:"collection"`
	RecordID    string    `json:"record_id"`
	CompletedBy string    `json:"completed_by,omitempty"` // empty for auto-completion
	CompletedAt time.Time `json:"completed_at"`
}

type Producer struct {
	orderWriter       *kafka.Writer
	reservationWriter *kafka.Writer
	logger            *logger.Logger
}

func NewProducer(cfg config.KafkaConfig, log *logger.Logger) *Producer {
	return &Producer{
		orderWriter: &kafka.Writer{
			Addr:  kafka.TCP(cfg.Brokers...),
			Topic: cfg.Topics.OrderCompleted,
		},
		reservationWriter: &kafka.Writer{
			Addr:  kafka.TCP(cfg.Brokers...),
			Topic: cfg.Topics.ReservationCompleted,
		},
		logger: log,
	}
}

// PublishOrderCompleted streams the order completion event to Kafka
func (p *Producer) PublishOrderCompleted(id, completedBy string) error {
	return p.publish(p.orderWriter, CompletionEvent{
		Collection:  "pedidos",
		RecordID:    id,
		CompletedBy: completedBy,
		CompletedAt: time.Now().UTC(),
	})
}

// PublishReservationCompleted streams the reservation completion event to Kafka
func (p *Producer) PublishReservationCompleted(id, completedBy string) error {
	return p.publish(p.reservationWriter, CompletionEvent{
		Collection:  "reservas",
		RecordID:    id,
		CompletedBy: completedBy,
		CompletedAt: time.Now().UTC(),
	})
}

func (p *Producer) publish(writer *kafka.Writer, event CompletionEvent) error {
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	p.logger.LogKafka("PUBLISH", writer.Topic, event.RecordID)

	return writer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(event.RecordID),
			Value: msgBytes,
		},
	)
}

func (p *Producer) Close() error {
	if err := p.orderWriter.Close(); err != nil {
		return err
	}
	return p.reservationWriter.Close()
}
