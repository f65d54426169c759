package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"github.com/ivankudzin/tailmates/internal/domain/model"
)

const (
	DefaultTopic = "tailmates.matching.events"

	EventMatchCreated = "match.created"
	EventLikeReceived = "like.received"
)

type Event struct {
	Type        string    `json:"type"`
	MatchID     string    `json:"match_id,omitempty"`
	PetLow      string    `json:"pet_low,omitempty"`
	PetHigh     string    `json:"pet_high,omitempty"`
	ActorPetID  string    `json:"actor_pet_id,omitempty"`
	TargetPetID string    `json:"target_pet_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// KafkaDispatcher publishes matching events as JSON. Match events are keyed
// by the canonical pair and like events by the target pet, so consumers see
// events about one recipient in order.
type KafkaDispatcher struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
}

func NewKafkaDispatcher(producer sarama.SyncProducer, topic string) *KafkaDispatcher {
	if strings.TrimSpace(topic) == "" {
		topic = DefaultTopic
	}
	return &KafkaDispatcher{
		producer: producer,
		topic:    topic,
		now:      time.Now,
	}
}

func (d *KafkaDispatcher) OnMatchCreated(_ context.Context, match model.Match) error {
	return d.publish(match.PetLow.String()+":"+match.PetHigh.String(), Event{
		Type:       EventMatchCreated,
		MatchID:    match.ID.String(),
		PetLow:     match.PetLow.String(),
		PetHigh:    match.PetHigh.String(),
		OccurredAt: match.CreatedAt.UTC(),
	})
}

func (d *KafkaDispatcher) OnLikeReceived(_ context.Context, actorPetID, targetPetID uuid.UUID) error {
	return d.publish(targetPetID.String(), Event{
		Type:        EventLikeReceived,
		ActorPetID:  actorPetID.String(),
		TargetPetID: targetPetID.String(),
		OccurredAt:  d.now().UTC(),
	})
}

func (d *KafkaDispatcher) publish(key string, event Event) error {
	if d.producer == nil {
		return fmt.Errorf("kafka producer is nil")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	_, _, err = d.producer.SendMessage(&sarama.ProducerMessage{
		Topic: d.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("publish %s event: %w", event.Type, err)
	}
	return nil
}
