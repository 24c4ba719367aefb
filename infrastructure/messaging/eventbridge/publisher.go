// Package eventbridge publishes domain events to AWS EventBridge and
// fans them out to in-process subscribers.
package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"

	"stellium-backend/application/ports"
	"stellium-backend/domain/events"
)

// EventBridge caps PutEvents at 10 entries per call
const putEventsBatchSize = 10

// EventBridgeBus implements ports.EventBus on AWS EventBridge. Local
// subscribers are notified after the remote publish; a failed local
// handler is logged, never propagated.
type EventBridgeBus struct {
	client   *awseventbridge.Client
	busName  string
	source   string
	logger   *zap.Logger
	mu       sync.RWMutex
	handlers map[string][]ports.EventHandler
}

// NewEventBridgeBus creates a new EventBridge-backed event bus
func NewEventBridgeBus(client *awseventbridge.Client, busName string, logger *zap.Logger) ports.EventBus {
	if busName == "" {
		busName = "default"
	}
	return &EventBridgeBus{
		client:   client,
		busName:  busName,
		source:   "stellium-backend",
		logger:   logger,
		handlers: make(map[string][]ports.EventHandler),
	}
}

// Publish sends a single event
func (b *EventBridgeBus) Publish(ctx context.Context, event events.DomainEvent) error {
	return b.PublishBatch(ctx, []events.DomainEvent{event})
}

// PublishBatch sends multiple events, chunked to the PutEvents limit
func (b *EventBridgeBus) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	if len(batch) == 0 {
		return nil
	}

	for i := 0; i < len(batch); i += putEventsBatchSize {
		end := i + putEventsBatchSize
		if end > len(batch) {
			end = len(batch)
		}
		if err := b.putEvents(ctx, batch[i:end]); err != nil {
			return err
		}
	}

	b.dispatchLocal(ctx, batch)
	return nil
}

// Subscribe registers a local handler for an event type
func (b *EventBridgeBus) Subscribe(eventType string, handler ports.EventHandler) error {
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	return nil
}

// Unsubscribe removes a local handler
func (b *EventBridgeBus) Unsubscribe(eventType string, handler ports.EventHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	registered := b.handlers[eventType]
	for i, h := range registered {
		if h == handler {
			b.handlers[eventType] = append(registered[:i], registered[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("handler not subscribed to %s", eventType)
}

// putEvents sends one PutEvents call
func (b *EventBridgeBus) putEvents(ctx context.Context, batch []events.DomainEvent) error {
	if b.client == nil {
		// local-only mode, used in development
		return nil
	}

	entries := make([]types.PutEventsRequestEntry, 0, len(batch))
	for _, event := range batch {
		detail, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", event.GetEventType(), err)
		}
		entries = append(entries, types.PutEventsRequestEntry{
			EventBusName: aws.String(b.busName),
			Source:       aws.String(b.source),
			DetailType:   aws.String(event.GetEventType()),
			Detail:       aws.String(string(detail)),
			Time:         aws.Time(time.Now()),
			Resources:    []string{event.GetAggregateID()},
		})
	}

	output, err := b.client.PutEvents(ctx, &awseventbridge.PutEventsInput{
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("failed to put events: %w", err)
	}
	if output.FailedEntryCount > 0 {
		return fmt.Errorf("%d events failed to publish", output.FailedEntryCount)
	}

	return nil
}

// dispatchLocal invokes in-process subscribers
func (b *EventBridgeBus) dispatchLocal(ctx context.Context, batch []events.DomainEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, event := range batch {
		for _, handler := range b.handlers[event.GetEventType()] {
			if !handler.CanHandle(event.GetEventType()) {
				continue
			}
			if err := handler.Handle(ctx, event); err != nil {
				b.logger.Warn("local event handler failed",
					zap.String("event_type", event.GetEventType()),
					zap.Error(err))
			}
		}
	}
}
