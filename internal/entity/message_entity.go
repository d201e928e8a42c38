package entity

import (
	"time"

	"github.com/google/uuid"
)

// Source points back into the uploaded document an answer was grounded on.
type Source struct {
	Page           string `json:"page"`
	SourceDocument string `json:"sourceDocument"`
}

// Message is immutable once appended to a transcript.
type Message struct {
	Id        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Sources   []Source  `json:"sources,omitempty"`
}
