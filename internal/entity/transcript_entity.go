package entity

// ConversationTranscript is the full ordered message history of the active
// conversation. SessionId is empty until the backend assigns one; an empty
// SessionId means the conversation is pre-provisioned and local-only.
type ConversationTranscript struct {
	SessionId string    `json:"sessionId"`
	Messages  []Message `json:"messages"`
}
