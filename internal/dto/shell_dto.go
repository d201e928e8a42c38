package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

type SourceDTO struct {
	Page           string `json:"page"`
	SourceDocument string `json:"source_document"`
}

type MessageDTO struct {
	Id        uuid.UUID   `json:"id"`
	Text      string      `json:"text"`
	Sender    string      `json:"sender"`
	Timestamp time.Time   `json:"timestamp"`
	Sources   []SourceDTO `json:"sources,omitempty"`
}

type TranscriptResponse struct {
	SessionId string       `json:"session_id,omitempty"`
	Messages  []MessageDTO `json:"messages"`
}

type SummaryDTO struct {
	Id           string    `json:"id"`
	Title        string    `json:"title"`
	LastMessage  string    `json:"last_message"`
	MessageCount int       `json:"message_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SessionListResponse struct {
	Selected string       `json:"selected,omitempty"`
	Sessions []SummaryDTO `json:"sessions"`
}

type UploadResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Chunks   int    `json:"chunks"`
}
