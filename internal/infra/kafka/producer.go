package kafka

import (
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

type ProducerConfig struct {
	Brokers  []string
	ClientID string
	Timeout  time.Duration
}

// NewSyncProducer builds a producer that waits for the partition leader ack.
// Events are small and rare, so batching is tuned for latency.
func NewSyncProducer(cfg ProducerConfig) (sarama.SyncProducer, error) {
	brokers := make([]string, 0, len(cfg.Brokers))
	for _, b := range cfg.Brokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are empty")
	}

	config := sarama.NewConfig()
	config.Version = sarama.V2_8_0_0
	if cfg.ClientID != "" {
		config.ClientID = cfg.ClientID
	}
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Flush.Frequency = 10 * time.Millisecond
	config.Producer.MaxMessageBytes = 256 * 1024
	if cfg.Timeout > 0 {
		config.Producer.Timeout = cfg.Timeout
		config.Net.DialTimeout = cfg.Timeout
	}

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return producer, nil
}

func SplitBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
