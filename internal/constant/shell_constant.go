package constant

import "time"

const (
	MessageSenderUser      = "user"
	MessageSenderAssistant = "assistant"

	// Seed message for every fresh conversation, local-only or not
	GreetingMessage = "Hi! Upload a document and ask me anything about it."

	// Appended to the transcript when the chat backend call fails.
	// Fixed text, no retry.
	ApologyMessage = "Sorry, something went wrong while answering. Please try again."

	// Title derivation for conversation summaries
	SummaryTitleMaxRunes = 30
	SummaryTitleEllipsis = "…"

	// Single key under which the summary list is persisted
	SummaryStorageKey = "doc_chat_sessions"

	// Upload gate (mirrors the backend's own limits, rejected locally first)
	UploadContentType     = "application/pdf"
	DefaultUploadMaxBytes = 10 * 1024 * 1024

	DefaultRequestTimeout = 30 * time.Second
)
