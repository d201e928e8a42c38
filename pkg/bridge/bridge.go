package bridge

import (
	"context"
	"encoding/json"
	"time"

	"doc-chat-shell/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topic carries every reconciliation event between the conversation side and
// the coordinator.
const Topic = "shell.reconciliation"

// Envelope is the wire form of an events.Event on the bus.
type Envelope struct {
	Type        string    `json:"type"`
	SessionId   string    `json:"session_id,omitempty"`
	LastMessage string    `json:"last_message,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func newEnvelope(ev events.Event) Envelope {
	env := Envelope{
		Type:       ev.EventType(),
		OccurredAt: ev.Timestamp(),
	}

	payload := ev.Payload()
	if v, ok := payload["session_id"].(string); ok {
		env.SessionId = v
	}
	if v, ok := payload["last_message"].(string); ok {
		env.LastMessage = v
	}

	return env
}

// Bridge is the narrow update channel between the conversation service and
// the session cache. It carries no state of its own: the conversation side
// publishes, the coordinator subscribes and applies. Neither side ever holds
// a reference into the other's internals.
type Bridge struct {
	pubSub *gochannel.GoChannel
}

func New(logger watermill.LoggerAdapter) *Bridge {
	return &Bridge{
		pubSub: gochannel.NewGoChannel(gochannel.Config{}, logger),
	}
}

// Update announces a completed message exchange for sessionId.
func (b *Bridge) Update(sessionId, lastMessage string) error {
	return b.Publish(events.ExchangeCompletedEvent{
		SessionId:   sessionId,
		LastMessage: lastMessage,
		OccurredAt:  time.Now(),
	})
}

// Refresh asks the subscriber to re-read persisted cache state.
func (b *Bridge) Refresh() error {
	return b.Publish(events.CacheRefreshEvent{OccurredAt: time.Now()})
}

// Publish puts any events.Event on the bus in envelope form.
func (b *Bridge) Publish(ev events.Event) error {
	payload, err := json.Marshal(newEnvelope(ev))
	if err != nil {
		return err
	}
	return b.pubSub.Publish(Topic, message.NewMessage(watermill.NewUUID(), payload))
}

// Subscribe returns the event stream. Intended for a single consumer (the
// coordinator); messages must be Acked.
func (b *Bridge) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, Topic)
}

func (b *Bridge) Close() error {
	return b.pubSub.Close()
}
