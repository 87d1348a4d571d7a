package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fridge-service/internal/config"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// KafkaEventPublisher implements EventPublisher using Kafka
type KafkaEventPublisher struct {
	producer   sarama.SyncProducer
	logger     *zap.Logger
	topicItems string
	topicStock string
	maxRetries int
	baseDelay  time.Duration
}

// NewKafkaEventPublisher creates a new Kafka event publisher
func NewKafkaEventPublisher(cfg *config.Config, logger *zap.Logger) (*KafkaEventPublisher, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.ClientID = cfg.KafkaClientID
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Retry.Max = cfg.KafkaRetries
	saramaConfig.Producer.RequiredAcks = requiredAcks(cfg.KafkaAcks)
	if saramaConfig.Producer.RequiredAcks == sarama.WaitForAll {
		saramaConfig.Producer.Idempotent = true
		saramaConfig.Net.MaxOpenRequests = 1
	}

	producer, err := sarama.NewSyncProducer(cfg.KafkaBrokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return newKafkaEventPublisher(producer, cfg, logger), nil
}

func newKafkaEventPublisher(producer sarama.SyncProducer, cfg *config.Config, logger *zap.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{
		producer:   producer,
		logger:     logger,
		topicItems: cfg.KafkaTopicItems,
		topicStock: cfg.KafkaTopicStock,
		maxRetries: 3,
		baseDelay:  100 * time.Millisecond,
	}
}

func requiredAcks(acks string) sarama.RequiredAcks {
	switch acks {
	case "0":
		return sarama.NoResponse
	case "1":
		return sarama.WaitForLocal
	default:
		return sarama.WaitForAll
	}
}

// Publish publishes an event to Kafka with retries and exponential backoff
func (p *KafkaEventPublisher) Publish(ctx context.Context, event interface{}) error {
	topic, err := p.topicFor(event)
	if err != nil {
		return fmt.Errorf("failed to determine topic: %w", err)
	}

	message, err := p.buildMessage(topic, event)
	if err != nil {
		return err
	}

	for attempt := 0; attempt < p.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		partition, offset, err := p.producer.SendMessage(message)
		if err == nil {
			p.logger.Info("Event published to Kafka",
				zap.String("topic", topic),
				zap.Int32("partition", partition),
				zap.Int64("offset", offset),
				zap.String("event-type", EventType(event)),
				zap.Int("attempt", attempt+1),
			)
			return nil
		}

		p.logger.Warn("Failed to publish event to Kafka, retrying",
			zap.String("topic", topic),
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", p.maxRetries),
		)

		// Exponential backoff: 100ms, 200ms, 400ms
		if attempt < p.maxRetries-1 {
			delay := p.baseDelay * time.Duration(1<<uint(attempt))
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled during backoff: %w", ctx.Err())
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("failed to publish event to Kafka after %d attempts", p.maxRetries)
}

func (p *KafkaEventPublisher) buildMessage(topic string, event interface{}) (*sarama.ProducerMessage, error) {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(eventJSON),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(EventType(event))},
			{Key: []byte("event-id"), Value: []byte(uuid.New().String())},
			{Key: []byte("timestamp"), Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}
	if id, ok := ItemID(event); ok {
		message.Key = sarama.StringEncoder(id.String())
	}
	return message, nil
}

// Close closes the Kafka producer
func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// topicFor routes lifecycle events and quantity events to separate topics
func (p *KafkaEventPublisher) topicFor(event interface{}) (string, error) {
	switch event.(type) {
	case ItemAddedEvent, ItemTrashedEvent, ItemRestoredEvent, ItemPurgedEvent:
		return p.topicItems, nil
	case QuantityAdjustedEvent:
		return p.topicStock, nil
	default:
		return "", fmt.Errorf("unknown event type: %T", event)
	}
}
