package bootstrap

import (
	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/ivankudzin/tailmates/internal/config"
	"github.com/ivankudzin/tailmates/internal/infra/httpclient"
	kafkainfra "github.com/ivankudzin/tailmates/internal/infra/kafka"
	"github.com/ivankudzin/tailmates/internal/infra/telegram"
	notifysvc "github.com/ivankudzin/tailmates/internal/services/notify"
)

// Notifications is the dispatcher chain built from config. Channels whose
// client cannot be created are skipped with a warning.
type Notifications struct {
	Safe     *notifysvc.Safe
	producer sarama.SyncProducer
}

func BuildNotifications(cfg config.Config, storage *Storage, log *zap.Logger) *Notifications {
	var (
		chain    notifysvc.Fanout
		producer sarama.SyncProducer
	)

	if len(cfg.Kafka.Brokers) > 0 {
		p, err := kafkainfra.NewSyncProducer(kafkainfra.ProducerConfig{
			Brokers:  cfg.Kafka.Brokers,
			ClientID: cfg.Kafka.ClientID,
			Timeout:  cfg.Kafka.Timeout,
		})
		if err != nil {
			log.Warn("kafka init failed, match events will not be published", zap.Error(err))
		} else {
			producer = p
			chain = append(chain, notifysvc.NewKafkaDispatcher(p, cfg.Kafka.Topic))
		}
	}

	if cfg.Telegram.BotToken != "" {
		bot, err := telegram.NewBot(cfg.Telegram.BotToken, httpclient.New(cfg.Telegram.Timeout))
		if err != nil {
			log.Warn("telegram init failed, owners will not be messaged", zap.Error(err))
		} else {
			chain = append(chain, notifysvc.NewTelegramDispatcher(bot, storage.Accounts, storage.Pets))
		}
	}

	var dispatcher notifysvc.Dispatcher = notifysvc.Nop{}
	if len(chain) > 0 {
		dispatcher = chain
	}

	return &Notifications{
		Safe:     notifysvc.NewSafe(dispatcher, log.Named("notify")),
		producer: producer,
	}
}

func (n *Notifications) Close() error {
	if n == nil || n.producer == nil {
		return nil
	}
	return n.producer.Close()
}
