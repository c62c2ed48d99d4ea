package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"

	"github.com/GlebRadaev/playlives/internal/metrics"
)

const (
	TypeRoundCompleted        = "round.completed"
	TypeRoundValidationFailed = "round.validation_failed"
	TypePaymentCompleted      = "payment.completed"

	Source = "playlives"

	publishTimeout = 5 * time.Second
)

type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Source    string         `json:"source"`
	Wallet    string         `json:"wallet"`
	GameID    string         `json:"gameId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

func New(eventType, wallet, gameID string, data map[string]any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    Source,
		Wallet:    wallet,
		GameID:    gameID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher delivers events after the state they describe has been committed.
// Delivery is best effort: failures are logged and counted, never returned.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type KafkaPublisher struct {
	producer producer
	topic    string
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(Source),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerLinger(10*time.Millisecond),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}
	return &KafkaPublisher{producer: client, topic: topic}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	value, err := json.Marshal(event)
	if err != nil {
		p.fail(event, err)
		return
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.Wallet),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "source", Value: []byte(event.Source)},
		},
	}

	// The request may already be finished when the event goes out.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		p.fail(event, err)
		return
	}
	zap.L().Debug("event published", zap.String("type", event.Type), zap.String("id", event.ID))
}

func (p *KafkaPublisher) fail(event Event, err error) {
	metrics.EventPublishFailures.WithLabelValues(event.Type).Inc()
	zap.L().Error("failed to publish event",
		zap.String("type", event.Type), zap.String("id", event.ID), zap.String("wallet", event.Wallet), zap.Error(err))
}

func (p *KafkaPublisher) Close() {
	p.producer.Close()
}

// LogPublisher writes events to the log. It stands in when no brokers are configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event Event) {
	zap.L().Info("event",
		zap.String("type", event.Type), zap.String("id", event.ID),
		zap.String("wallet", event.Wallet), zap.String("game_id", event.GameID), zap.Any("data", event.Data))
}
