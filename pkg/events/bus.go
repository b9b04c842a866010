package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// TopicKnowledge carries all ingestion events.
const TopicKnowledge = "knowledge.events"

// Handler processes one delivered event.
type Handler func(ctx context.Context, event Event) error

type envelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// Bus is the in-process event bus. Sessions and knowledge live in one
// process, so the gochannel transport is all that is needed; subscribers
// run on their own goroutines.
type Bus struct {
	pubSub *gochannel.GoChannel
}

func NewBus() *Bus {
	return &Bus{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NopLogger{},
		),
	}
}

// Publish sends an event to the knowledge topic.
func (b *Bus) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(envelope{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)

	if err := b.pubSub.Publish(TopicKnowledge, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.EventType(), err)
	}
	return nil
}

// Subscribe registers a handler for the knowledge topic. Delivery runs on a
// background goroutine until ctx is cancelled or the bus is closed.
func (b *Bus) Subscribe(ctx context.Context, handler Handler) error {
	messages, err := b.pubSub.Subscribe(ctx, TopicKnowledge)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", TopicKnowledge, err)
	}

	go func() {
		for msg := range messages {
			var env envelope
			if err := json.Unmarshal(msg.Payload, &env); err != nil {
				msg.Ack()
				continue
			}

			event := BaseEvent{
				Type:       env.Type,
				Data:       env.Data,
				OccurredAt: env.OccurredAt,
			}

			// Handler failures are not retried; events here are advisory
			_ = handler(msg.Context(), event)
			msg.Ack()
		}
	}()

	return nil
}

// Close shuts the bus down and closes subscriber channels.
func (b *Bus) Close() error {
	return b.pubSub.Close()
}
