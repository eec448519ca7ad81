package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	id "recscope/pkg/domain"
)

// KafkaStore publishes audit events to a Kafka topic. Events are keyed by
// assessment id so per-assessment ordering is preserved within a partition.
// ListByAssessment is not supported; queries go through a downstream
// materialized store, not the broker.
type KafkaStore struct {
	client *kgo.Client
	topic  string
}

// NewKafkaStore connects to the brokers and ensures the audit topic exists.
func NewKafkaStore(ctx context.Context, brokers []string, topic string) (*KafkaStore, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerLinger(10*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}

	admin := kadm.NewClient(client)
	if _, err := admin.CreateTopic(ctx, 1, 1, nil, topic); err != nil {
		// Topic may already exist; anything else is fatal.
		if exists, listErr := topicExists(ctx, admin, topic); listErr != nil || !exists {
			client.Close()
			return nil, fmt.Errorf("ensure audit topic %s: %w", topic, err)
		}
	}

	return &KafkaStore{client: client, topic: topic}, nil
}

func topicExists(ctx context.Context, admin *kadm.Client, topic string) (bool, error) {
	details, err := admin.ListTopics(ctx, topic)
	if err != nil {
		return false, err
	}
	return details.Has(topic), nil
}

type kafkaEvent struct {
	Timestamp    string `json:"timestamp"`
	Actor        string `json:"actor,omitempty"`
	TenantID     string `json:"tenant_id"`
	AssessmentID string `json:"assessment_id"`
	Action       string `json:"action"`
	Detail       string `json:"detail,omitempty"`
}

func (s *KafkaStore) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(kafkaEvent{
		Timestamp:    event.Timestamp.Format(time.RFC3339Nano),
		Actor:        event.Actor,
		TenantID:     event.TenantID.String(),
		AssessmentID: event.AssessmentID.String(),
		Action:       string(event.Action),
		Detail:       event.Detail,
	})
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}
	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.AssessmentID.String()),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("publish audit event: %w", err)
	}
	return nil
}

func (s *KafkaStore) ListByAssessment(context.Context, id.AssessmentID) ([]Event, error) {
	return nil, fmt.Errorf("kafka audit store does not support queries")
}

func (s *KafkaStore) Close() {
	s.client.Close()
}
