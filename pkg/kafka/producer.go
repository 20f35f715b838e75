package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/beout/beout-admin/pkg/config"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Message is a record to publish
type Message struct {
	Topic   string
	Key     string
	Value   interface{}
	Headers map[string]string
}

// Producer publishes JSON messages to Kafka/Redpanda
type Producer interface {
	Publish(ctx context.Context, msg Message) error
	Close()
}

type franzProducer struct {
	client *kgo.Client
}

// NewProducer creates a synchronous franz-go producer
func NewProducer(ctx context.Context, cfg config.KafkaConfig) (Producer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(cfg.ClientID),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach kafka brokers %v: %w", cfg.Brokers, err)
	}

	return &franzProducer{client: client}, nil
}

// Publish encodes msg.Value as JSON and waits for the broker ack
func (p *franzProducer) Publish(ctx context.Context, msg Message) error {
	record, err := newRecord(msg)
	if err != nil {
		return err
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", msg.Topic, err)
	}
	return nil
}

// Close flushes and closes the client
func (p *franzProducer) Close() {
	p.client.Close()
}

func newRecord(msg Message) (*kgo.Record, error) {
	if msg.Topic == "" {
		return nil, fmt.Errorf("kafka message topic is required")
	}

	value, err := json.Marshal(msg.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message for %s: %w", msg.Topic, err)
	}

	record := &kgo.Record{
		Topic: msg.Topic,
		Value: value,
	}
	if msg.Key != "" {
		record.Key = []byte(msg.Key)
	}
	for k, v := range msg.Headers {
		record.Headers = append(record.Headers, kgo.RecordHeader{Key: k, Value: []byte(v)})
	}
	return record, nil
}
