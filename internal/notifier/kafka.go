package notifier

import (
	"context"
	"errors"

	"github.com/beout/beout-admin/pkg/kafka"
)

// KafkaPublisher publishes push jobs to a Kafka topic keyed by user
type KafkaPublisher struct {
	producer kafka.Producer
	topic    string
}

// NewKafkaPublisher creates a new KafkaPublisher
func NewKafkaPublisher(producer kafka.Producer, topic string) (*KafkaPublisher, error) {
	if producer == nil {
		return nil, errors.New("kafka producer is required")
	}
	if topic == "" {
		return nil, errors.New("push topic is required")
	}
	return &KafkaPublisher{producer: producer, topic: topic}, nil
}

// Name returns the publisher name
func (p *KafkaPublisher) Name() string {
	return "kafka"
}

// Publish sends job and waits for the broker ack
func (p *KafkaPublisher) Publish(ctx context.Context, job *PushJob) error {
	key := job.UserID
	if key == "" {
		key = job.MessageID
	}
	return p.producer.Publish(ctx, kafka.Message{
		Topic: p.topic,
		Key:   key,
		Value: job,
		Headers: map[string]string{
			"template_key": job.TemplateKey,
			"language":     job.Language,
		},
	})
}
