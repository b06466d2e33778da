package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventPublisher defines the interface for publishing question bank events
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *Event) error
	Close() error
}

// KafkaEventPublisher implements EventPublisher on top of a Watermill publisher,
// normally the Kafka one
type KafkaEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

// PublisherConfig holds configuration for the event publisher
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

const partitionKeyHeader = "partition_key"

// NewKafkaEventPublisher creates a new Kafka-based event publisher using Watermill.
// Events of one import job land in the same partition.
func NewKafkaEventPublisher(config PublisherConfig) (*KafkaEventPublisher, error) {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	logger := watermill.NewSlogLogger(config.Logger)

	// Create Kafka publisher configuration
	publisherConfig := kafka.PublisherConfig{
		Brokers: config.KafkaBrokers,
		Marshaler: kafka.NewWithPartitioningMarshaler(func(topic string, msg *message.Message) (string, error) {
			return msg.Metadata.Get(partitionKeyHeader), nil
		}),
	}

	// Create the publisher
	publisher, err := kafka.NewPublisher(publisherConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return NewWatermillEventPublisher(publisher, config.TopicName, config.Logger), nil
}

// NewWatermillEventPublisher wraps any Watermill publisher
func NewWatermillEventPublisher(publisher message.Publisher, topic string, logger *slog.Logger) *KafkaEventPublisher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &KafkaEventPublisher{
		publisher: publisher,
		logger:    logger,
		topicName: topic,
	}
}

// PublishEvent publishes an event to the configured topic
func (p *KafkaEventPublisher) PublishEvent(ctx context.Context, event *Event) error {
	// Marshal the event to JSON
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Create Watermill message
	msg := message.NewMessage(event.ID, eventBytes)
	msg.SetContext(ctx)

	// Add metadata headers
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))
	msg.Metadata.Set(partitionKeyHeader, event.PartitionKey())

	// Publish the message
	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.InfoContext(ctx, "Published event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topicName)

	return nil
}

// Close closes the publisher and releases resources
func (p *KafkaEventPublisher) Close() error {
	return p.publisher.Close()
}

// MockEventPublisher keeps events in memory. It is used when publishing is
// disabled and in tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []Event
	Logger *slog.Logger
}

// NewMockEventPublisher creates a new mock event publisher
func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &MockEventPublisher{Logger: logger}
}

// PublishEvent stores the event in memory
func (m *MockEventPublisher) PublishEvent(ctx context.Context, event *Event) error {
	m.mu.Lock()
	m.events = append(m.events, *event)
	m.mu.Unlock()

	m.Logger.DebugContext(ctx, "Mock: Published event",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

// Close is a no-op for the mock publisher
func (m *MockEventPublisher) Close() error {
	return nil
}

// GetPublishedEvents returns a copy of all published events
func (m *MockEventPublisher) GetPublishedEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

// EventsOfType returns the published events of type t in publish order
func (m *MockEventPublisher) EventsOfType(t EventType) []Event {
	var out []Event
	for _, e := range m.GetPublishedEvents() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// ClearEvents clears all published events
func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	m.events = nil
	m.mu.Unlock()
}
