package local

import (
	"encoding/json"
	"time"

	"doc-chat-shell/internal/constant"
	"doc-chat-shell/internal/entity"
	"doc-chat-shell/internal/pkg/logger"
	"doc-chat-shell/pkg/kvstore"
)

// SummaryRepository persists the summary list under a single fixed key in the
// injected Store. It owns that key exclusively. Ordering is maintained by
// move-to-front on every upsert, never by re-sorting.
type SummaryRepository struct {
	store  kvstore.Store
	logger logger.ILogger
}

func NewSummaryRepository(store kvstore.Store, log logger.ILogger) *SummaryRepository {
	return &SummaryRepository{
		store:  store,
		logger: log,
	}
}

func (r *SummaryRepository) Load() []entity.ConversationSummary {
	raw, ok := r.store.Get(constant.SummaryStorageKey)
	if !ok {
		return []entity.ConversationSummary{}
	}

	var summaries []entity.ConversationSummary
	if err := json.Unmarshal(raw, &summaries); err != nil {
		// Corrupt cache reads as empty. History is a convenience projection
		// of the remote store, so dropping it is safe.
		r.logger.Warn("SummaryRepository", "Persisted cache unparsable, treating as empty", map[string]interface{}{"error": err.Error()})
		return []entity.ConversationSummary{}
	}
	if summaries == nil {
		return []entity.ConversationSummary{}
	}

	return summaries
}

func (r *SummaryRepository) Upsert(sessionId, lastMessage string) []entity.ConversationSummary {
	summaries := r.Load()
	now := time.Now()

	for i := range summaries {
		if summaries[i].Id != sessionId {
			continue
		}

		s := summaries[i]
		// Title is assigned exactly once, at the first exchange.
		s.LastMessage = lastMessage
		s.MessageCount++
		s.UpdatedAt = now

		// Move to front
		summaries = append(summaries[:i], summaries[i+1:]...)
		summaries = append([]entity.ConversationSummary{s}, summaries...)

		r.persist(summaries)
		return summaries
	}

	summaries = append([]entity.ConversationSummary{{
		Id:           sessionId,
		Title:        deriveTitle(lastMessage),
		LastMessage:  lastMessage,
		MessageCount: 1,
		UpdatedAt:    now,
	}}, summaries...)

	r.persist(summaries)
	return summaries
}

func (r *SummaryRepository) Remove(sessionId string) []entity.ConversationSummary {
	summaries := r.Load()

	for i := range summaries {
		if summaries[i].Id == sessionId {
			summaries = append(summaries[:i], summaries[i+1:]...)
			if len(summaries) == 0 {
				// Last entry gone: drop the key instead of persisting an
				// empty list.
				if err := r.store.Delete(constant.SummaryStorageKey); err != nil {
					r.logger.Error("SummaryRepository", "Failed to drop empty cache key", map[string]interface{}{"error": err.Error()})
				}
				return summaries
			}
			r.persist(summaries)
			return summaries
		}
	}

	return summaries
}

func (r *SummaryRepository) persist(summaries []entity.ConversationSummary) {
	raw, err := json.Marshal(summaries)
	if err != nil {
		r.logger.Error("SummaryRepository", "Failed to marshal summaries", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := r.store.Set(constant.SummaryStorageKey, raw); err != nil {
		r.logger.Error("SummaryRepository", "Failed to persist summaries", map[string]interface{}{"error": err.Error()})
	}
}

// deriveTitle truncates rune-wise so multi-byte text never splits mid-character.
func deriveTitle(lastMessage string) string {
	runes := []rune(lastMessage)
	if len(runes) > constant.SummaryTitleMaxRunes {
		return string(runes[:constant.SummaryTitleMaxRunes]) + constant.SummaryTitleEllipsis
	}
	return lastMessage
}
