package service

import (
	"context"
	"encoding/json"
	"sync"

	"doc-chat-shell/internal/entity"
	"doc-chat-shell/internal/pkg/logger"
	"doc-chat-shell/internal/repository/contract"
	"doc-chat-shell/pkg/bridge"
	"doc-chat-shell/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// ExchangeSubscriber is the coordinator side of the reconciliation bridge.
type ExchangeSubscriber interface {
	Subscribe(ctx context.Context) (<-chan *message.Message, error)
}

// Broadcaster pushes summary-list refreshes to connected UI clients.
type Broadcaster interface {
	Broadcast(event string, data interface{})
}

// ICoordinatorService owns the single piece of shared state — which session
// is selected — and routes selection, deletion and reconciliation between
// the conversation service and the summary cache.
type ICoordinatorService interface {
	Run(ctx context.Context) error
	Summaries() []entity.ConversationSummary
	SelectedSession() string
	Select(ctx context.Context, sessionId string) entity.ConversationTranscript
	NewConversation(ctx context.Context) entity.ConversationTranscript
	Delete(ctx context.Context, sessionId string) error
}

type coordinatorService struct {
	conversation IConversationService
	cache        contract.SummaryRepository
	sessions     SessionStoreClient
	subscriber   ExchangeSubscriber
	broadcaster  Broadcaster
	logger       logger.ILogger

	mu       sync.Mutex
	selected string
}

func NewCoordinatorService(
	conversation IConversationService,
	cache contract.SummaryRepository,
	sessions SessionStoreClient,
	subscriber ExchangeSubscriber,
	broadcaster Broadcaster,
	log logger.ILogger,
) ICoordinatorService {
	return &coordinatorService{
		conversation: conversation,
		cache:        cache,
		sessions:     sessions,
		subscriber:   subscriber,
		broadcaster:  broadcaster,
		logger:       log,
	}
}

// Run consumes bridge events until ctx is cancelled. It is the only writer
// into the cache on the exchange path, so the conversation service never
// holds a reference to cache storage.
func (c *coordinatorService) Run(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.processMessage(msg)
		}
	}()

	return nil
}

func (c *coordinatorService) processMessage(msg *message.Message) {
	defer msg.Ack()

	var env bridge.Envelope
	if err := json.Unmarshal(msg.Payload, &env); err != nil {
		c.logger.Error("CoordinatorService", "Failed to unmarshal bridge event", map[string]interface{}{"error": err.Error()})
		return
	}

	switch env.Type {
	case events.TypeExchangeCompleted:
		summaries := c.cache.Upsert(env.SessionId, env.LastMessage)

		// A sessionless conversation that just adopted a backend id becomes
		// the current selection.
		c.mu.Lock()
		if c.selected == "" {
			c.selected = env.SessionId
		}
		c.mu.Unlock()

		c.broadcaster.Broadcast("sessions_updated", summaries)

	case events.TypeCacheRefresh:
		c.broadcaster.Broadcast("sessions_updated", c.cache.Load())

	default:
		c.logger.Warn("CoordinatorService", "Unknown bridge event type", map[string]interface{}{"type": env.Type})
	}
}

func (c *coordinatorService) Summaries() []entity.ConversationSummary {
	return c.cache.Load()
}

func (c *coordinatorService) SelectedSession() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

func (c *coordinatorService) Select(ctx context.Context, sessionId string) entity.ConversationTranscript {
	c.mu.Lock()
	c.selected = sessionId
	c.mu.Unlock()

	return c.conversation.Switch(ctx, sessionId)
}

func (c *coordinatorService) NewConversation(ctx context.Context) entity.ConversationTranscript {
	c.mu.Lock()
	c.selected = ""
	c.mu.Unlock()

	return c.conversation.Create(ctx)
}

// Delete removes the session remotely first; when that fails the cache and
// the selection stay untouched. Deleting the selected session falls through
// to a fresh conversation.
func (c *coordinatorService) Delete(ctx context.Context, sessionId string) error {
	if err := c.sessions.Delete(ctx, sessionId); err != nil {
		c.logger.Error("CoordinatorService", "Remote session deletion failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return err
	}

	summaries := c.cache.Remove(sessionId)
	c.broadcaster.Broadcast("sessions_updated", summaries)

	c.mu.Lock()
	wasSelected := c.selected == sessionId
	c.mu.Unlock()

	if wasSelected {
		c.NewConversation(ctx)
	}

	return nil
}
