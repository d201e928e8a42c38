package contract

import (
	"doc-chat-shell/internal/entity"
)

// SummaryRepository is the session cache: an ordered, locally persisted list
// of conversation summaries, newest first. It is pure data management and
// never talks to the network. All three operations return the resulting
// ordered list so callers can render without a second read.
type SummaryRepository interface {
	// Load never fails: a missing or unparsable persisted value reads as an
	// empty list.
	Load() []entity.ConversationSummary

	// Upsert updates the summary for sessionId in place and moves it to the
	// front, or inserts a new one at the front when absent. The result is
	// persisted before returning.
	Upsert(sessionId, lastMessage string) []entity.ConversationSummary

	// Remove deletes the summary if present; a no-op otherwise. The result is
	// persisted before returning.
	Remove(sessionId string) []entity.ConversationSummary
}
