package entity

import "time"

// ConversationSummary is the cache-resident projection of a remote session,
// used for history navigation. It never holds the full transcript.
type ConversationSummary struct {
	Id           string    `json:"id"`
	Title        string    `json:"title"`
	LastMessage  string    `json:"lastMessage"`
	MessageCount int       `json:"messageCount"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
