package events

import "time"

// Event defines the contract for all shell events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "EXCHANGE_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeExchangeCompleted = "EXCHANGE_COMPLETED"
	TypeCacheRefresh      = "CACHE_REFRESH"
)

// ExchangeCompletedEvent is emitted by the conversation side after a
// successful message exchange. The coordinator forwards it into the summary
// cache; the conversation side never touches the cache directly.
type ExchangeCompletedEvent struct {
	SessionId   string    `json:"session_id"`
	LastMessage string    `json:"last_message"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (e ExchangeCompletedEvent) EventType() string { return TypeExchangeCompleted }

func (e ExchangeCompletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"session_id":   e.SessionId,
		"last_message": e.LastMessage,
	}
}

func (e ExchangeCompletedEvent) Timestamp() time.Time { return e.OccurredAt }

// CacheRefreshEvent asks the coordinator to re-read persisted state, e.g.
// after a deletion mutated the cache outside the exchange flow.
type CacheRefreshEvent struct {
	OccurredAt time.Time `json:"occurred_at"`
}

func (e CacheRefreshEvent) EventType() string { return TypeCacheRefresh }

func (e CacheRefreshEvent) Payload() map[string]interface{} {
	return map[string]interface{}{}
}

func (e CacheRefreshEvent) Timestamp() time.Time { return e.OccurredAt }
