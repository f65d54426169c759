package kafka

import (
	"reflect"
	"testing"
)

func TestSplitBrokers(t *testing.T) {
	got := SplitBrokers(" kafka-1:9092, ,kafka-2:9092 ")
	want := []string{"kafka-1:9092", "kafka-2:9092"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected brokers: %v", got)
	}
}

func TestNewSyncProducerRejectsEmptyBrokers(t *testing.T) {
	if _, err := NewSyncProducer(ProducerConfig{Brokers: []string{" "}}); err == nil {
		t.Fatalf("expected error for empty broker list")
	}
}
