package mapper

import (
	"doc-chat-shell/internal/constant"
	"doc-chat-shell/internal/dto"
	"doc-chat-shell/internal/entity"
	"doc-chat-shell/pkg/chatbackend"
	"doc-chat-shell/pkg/sessionstore"

	"github.com/google/uuid"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

// Remote → Entity

// RemoteMessageToEntity maps a stored message into the local model. The
// remote store speaks in roles; anything that is not "user" renders as the
// assistant.
func (m *ConversationMapper) RemoteMessageToEntity(msg sessionstore.RemoteMessage) entity.Message {
	sender := constant.MessageSenderAssistant
	if msg.Role == constant.MessageSenderUser {
		sender = constant.MessageSenderUser
	}

	return entity.Message{
		Id:        uuid.New(),
		Text:      msg.Content,
		Sender:    sender,
		Timestamp: msg.Timestamp,
	}
}

func (m *ConversationMapper) RemoteTranscriptToEntity(record *sessionstore.TranscriptRecord) entity.ConversationTranscript {
	messages := make([]entity.Message, 0, len(record.Messages))
	for _, msg := range record.Messages {
		messages = append(messages, m.RemoteMessageToEntity(msg))
	}

	return entity.ConversationTranscript{
		SessionId: record.SessionId,
		Messages:  messages,
	}
}

// SourcesToEntity carries citation info over, with "Unknown" fallbacks for
// blank fields the backend sometimes emits.
func (m *ConversationMapper) SourcesToEntity(sources []chatbackend.SourceInfo) []entity.Source {
	if len(sources) == 0 {
		return nil
	}

	result := make([]entity.Source, 0, len(sources))
	for _, s := range sources {
		page := s.Page
		if page == "" {
			page = "Unknown"
		}
		source := s.Source
		if source == "" {
			source = "Unknown"
		}
		result = append(result, entity.Source{
			Page:           page,
			SourceDocument: source,
		})
	}

	return result
}

// Entity → DTO

func (m *ConversationMapper) MessageToDTO(msg entity.Message) dto.MessageDTO {
	var sources []dto.SourceDTO
	for _, s := range msg.Sources {
		sources = append(sources, dto.SourceDTO{
			Page:           s.Page,
			SourceDocument: s.SourceDocument,
		})
	}

	return dto.MessageDTO{
		Id:        msg.Id,
		Text:      msg.Text,
		Sender:    msg.Sender,
		Timestamp: msg.Timestamp,
		Sources:   sources,
	}
}

func (m *ConversationMapper) TranscriptToDTO(t entity.ConversationTranscript) dto.TranscriptResponse {
	messages := make([]dto.MessageDTO, 0, len(t.Messages))
	for _, msg := range t.Messages {
		messages = append(messages, m.MessageToDTO(msg))
	}

	return dto.TranscriptResponse{
		SessionId: t.SessionId,
		Messages:  messages,
	}
}

func (m *ConversationMapper) SummariesToDTO(summaries []entity.ConversationSummary) []dto.SummaryDTO {
	result := make([]dto.SummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		result = append(result, dto.SummaryDTO{
			Id:           s.Id,
			Title:        s.Title,
			LastMessage:  s.LastMessage,
			MessageCount: s.MessageCount,
			UpdatedAt:    s.UpdatedAt,
		})
	}
	return result
}
