package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"doc-chat-shell/internal/constant"
	"doc-chat-shell/internal/entity"
	"doc-chat-shell/internal/mapper"
	"doc-chat-shell/internal/pkg/logger"
	"doc-chat-shell/pkg/chatbackend"
	"doc-chat-shell/pkg/sessionstore"

	"github.com/google/uuid"
)

var (
	// ErrEmptyMessage rejects whitespace-only input before any state change.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrSendInFlight guards the single-send-at-a-time rule.
	ErrSendInFlight = errors.New("a message is already being sent")
)

// SessionStoreClient is the slice of the remote session store the
// conversation side needs.
type SessionStoreClient interface {
	Create(ctx context.Context) (*sessionstore.SessionRecord, error)
	Fetch(ctx context.Context, sessionId string) (*sessionstore.TranscriptRecord, error)
	Delete(ctx context.Context, sessionId string) error
}

// ChatClient sends one message and returns the answer payload.
type ChatClient interface {
	Send(ctx context.Context, message, sessionId string) (*chatbackend.ChatData, error)
}

// ExchangePublisher is the conversation side of the reconciliation bridge.
type ExchangePublisher interface {
	Update(sessionId, lastMessage string) error
	Refresh() error
}

type IConversationService interface {
	// Create provisions a remote session and resets the transcript to the
	// greeting. Creation failure is non-fatal: the conversation degrades to
	// local-only (empty session id).
	Create(ctx context.Context) entity.ConversationTranscript

	// Load replaces the active transcript with the remote one. On failure
	// the transcript resets to empty rather than keeping stale content. A
	// fetch that completes after a further switch is discarded.
	Load(ctx context.Context, sessionId string) entity.ConversationTranscript

	// Send runs one optimistic exchange. Backend failure is surfaced inside
	// the transcript as a fixed apology message, never as an error return.
	Send(ctx context.Context, text string) (entity.ConversationTranscript, error)

	// Switch discards the current transcript; a non-empty target loads it
	// from the remote store, an empty target resets to the greeting without
	// touching the network.
	Switch(ctx context.Context, sessionId string) entity.ConversationTranscript

	// Snapshot returns a copy of the active transcript.
	Snapshot() entity.ConversationTranscript
}

type conversationService struct {
	sessions SessionStoreClient
	chat     ChatClient
	bridge   ExchangePublisher
	mapper   *mapper.ConversationMapper
	logger   logger.ILogger

	mu         sync.Mutex
	transcript entity.ConversationTranscript
	sending    bool

	// epoch increments on every switch/load/create. An in-flight send
	// captures the epoch it started under and drops its response when the
	// epochs no longer match, so an answer for a previous session can never
	// land in the transcript the user switched to.
	epoch uint64
}

func NewConversationService(
	sessions SessionStoreClient,
	chat ChatClient,
	bridge ExchangePublisher,
	convMapper *mapper.ConversationMapper,
	log logger.ILogger,
) IConversationService {
	s := &conversationService{
		sessions: sessions,
		chat:     chat,
		bridge:   bridge,
		mapper:   convMapper,
		logger:   log,
	}
	s.transcript = greetingTranscript("")
	return s
}

func (s *conversationService) Create(ctx context.Context) entity.ConversationTranscript {
	record, err := s.sessions.Create(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	sessionId := ""
	if err != nil {
		// Degrade silently to local-only; a later successful send may still
		// adopt a backend-assigned id.
		s.logger.Warn("ConversationService", "Session creation failed, continuing local-only", map[string]interface{}{"error": err.Error()})
	} else {
		sessionId = record.SessionId
	}

	s.transcript = greetingTranscript(sessionId)
	return copyTranscript(s.transcript)
}

func (s *conversationService) Load(ctx context.Context, sessionId string) entity.ConversationTranscript {
	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.mu.Unlock()

	record, err := s.sessions.Fetch(ctx, sessionId)

	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		// The user moved on while the fetch was in flight; its result targets
		// a transcript that is no longer displayed.
		s.logger.Warn("ConversationService", "Discarding stale transcript fetch after session switch", map[string]interface{}{"session_id": sessionId})
		return copyTranscript(s.transcript)
	}

	if err != nil {
		s.logger.Error("ConversationService", "Failed to load session, resetting transcript", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		s.transcript = entity.ConversationTranscript{
			SessionId: sessionId,
			Messages:  []entity.Message{},
		}
		return copyTranscript(s.transcript)
	}

	s.transcript = s.mapper.RemoteTranscriptToEntity(record)
	return copyTranscript(s.transcript)
}

func (s *conversationService) Send(ctx context.Context, text string) (entity.ConversationTranscript, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return s.Snapshot(), ErrEmptyMessage
	}

	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return s.Snapshot(), ErrSendInFlight
	}
	s.sending = true
	epoch := s.epoch
	sessionId := s.transcript.SessionId

	// Optimistic append: the user message stays regardless of the outcome.
	s.transcript.Messages = append(s.transcript.Messages, entity.Message{
		Id:        uuid.New(),
		Text:      trimmed,
		Sender:    constant.MessageSenderUser,
		Timestamp: time.Now(),
	})
	s.mu.Unlock()

	data, err := s.chat.Send(ctx, trimmed, sessionId)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sending = false

	if epoch != s.epoch {
		// The user switched away while this request was in flight. The
		// response targets a transcript that is no longer displayed.
		s.logger.Warn("ConversationService", "Discarding stale chat response after session switch", map[string]interface{}{"session_id": sessionId})
		return copyTranscript(s.transcript), nil
	}

	if err != nil {
		s.logger.Error("ConversationService", "Chat backend call failed", map[string]interface{}{"error": err.Error()})
		s.transcript.Messages = append(s.transcript.Messages, entity.Message{
			Id:        uuid.New(),
			Text:      constant.ApologyMessage,
			Sender:    constant.MessageSenderAssistant,
			Timestamp: time.Now(),
		})
		// The cache is not updated for failed exchanges.
		return copyTranscript(s.transcript), nil
	}

	if s.transcript.SessionId == "" && data.SessionId != "" {
		s.transcript.SessionId = data.SessionId
	}

	s.transcript.Messages = append(s.transcript.Messages, entity.Message{
		Id:        uuid.New(),
		Text:      data.Answer,
		Sender:    constant.MessageSenderAssistant,
		Timestamp: time.Now(),
		Sources:   s.mapper.SourcesToEntity(data.Sources),
	})

	if s.transcript.SessionId != "" {
		if err := s.bridge.Update(s.transcript.SessionId, trimmed); err != nil {
			s.logger.Error("ConversationService", "Failed to publish exchange event", map[string]interface{}{"error": err.Error()})
		}
	}

	return copyTranscript(s.transcript), nil
}

func (s *conversationService) Switch(ctx context.Context, sessionId string) entity.ConversationTranscript {
	if sessionId != "" {
		return s.Load(ctx, sessionId)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	s.transcript = greetingTranscript("")
	return copyTranscript(s.transcript)
}

func (s *conversationService) Snapshot() entity.ConversationTranscript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyTranscript(s.transcript)
}

func greetingTranscript(sessionId string) entity.ConversationTranscript {
	return entity.ConversationTranscript{
		SessionId: sessionId,
		Messages: []entity.Message{{
			Id:        uuid.New(),
			Text:      constant.GreetingMessage,
			Sender:    constant.MessageSenderAssistant,
			Timestamp: time.Now(),
		}},
	}
}

func copyTranscript(t entity.ConversationTranscript) entity.ConversationTranscript {
	messages := make([]entity.Message, len(t.Messages))
	copy(messages, t.Messages)
	return entity.ConversationTranscript{
		SessionId: t.SessionId,
		Messages:  messages,
	}
}
