package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"go.uber.org/zap"

	"finboard/internal/logger"
)

// flushTimeoutMs bounds how long Close waits for in-flight messages.
const flushTimeoutMs = 5000

// KafkaConfig selects the cluster and topic audit events go to. When APIKey
// is set the connection uses SASL_SSL with PLAIN credentials.
type KafkaConfig struct {
	BootstrapServers string
	APIKey           string
	APISecret        string
	Topic            string
}

// KafkaPublisher produces events as JSON messages keyed by user id, so a
// user's events stay ordered within one partition.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
	done     chan struct{}
}

var _ Publisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher connects a producer and starts draining delivery reports.
func NewKafkaPublisher(cfg KafkaConfig) (*KafkaPublisher, error) {
	configMap := &kafka.ConfigMap{
		"bootstrap.servers": cfg.BootstrapServers,
	}
	if cfg.APIKey != "" {
		_ = configMap.SetKey("sasl.username", cfg.APIKey)
		_ = configMap.SetKey("sasl.password", cfg.APISecret)
		_ = configMap.SetKey("security.protocol", "SASL_SSL")
		_ = configMap.SetKey("sasl.mechanism", "PLAIN")
	}

	producer, err := kafka.NewProducer(configMap)
	if err != nil {
		logger.Get().Desugar().Error("failed to initialize Kafka producer",
			zap.String("bootstrap_servers", cfg.BootstrapServers),
			zap.Error(err))
		return nil, err
	}

	p := &KafkaPublisher{producer: producer, topic: cfg.Topic, done: make(chan struct{})}
	go p.drain()

	logger.Get().Desugar().Info("Kafka producer initialized successfully",
		zap.String("bootstrap_servers", cfg.BootstrapServers),
		zap.String("topic", cfg.Topic))
	return p, nil
}

func (p *KafkaPublisher) drain() {
	defer close(p.done)
	for e := range p.producer.Events() {
		msg, ok := e.(*kafka.Message)
		if !ok || msg.TopicPartition.Error == nil {
			continue
		}
		logger.Get().Desugar().Error("failed to deliver message",
			zap.String("topic", p.topic),
			zap.Error(msg.TopicPartition.Error))
	}
}

// Publish enqueues event on the producer. Delivery is asynchronous.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.UserID),
		Value:          value,
	}
	if err := p.producer.Produce(msg, nil); err != nil {
		logger.Get().Desugar().Error("failed to produce message",
			zap.String("topic", p.topic),
			zap.Error(err))
		return err
	}

	logger.Get().Desugar().Debug("message produced successfully",
		zap.String("topic", p.topic),
		zap.String("action", event.Action))
	return nil
}

// Close flushes outstanding messages and shuts the producer down.
func (p *KafkaPublisher) Close() {
	if remaining := p.producer.Flush(flushTimeoutMs); remaining > 0 {
		logger.Get().Warnw("Kafka producer closed with undelivered messages", "remaining", remaining)
	}
	p.producer.Close()
	<-p.done
}
