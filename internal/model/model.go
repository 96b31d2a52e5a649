package model

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies which side of the conversation a message belongs to.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Canned assistant replies shown in the transcript when the answering
// service misbehaves. The user sees these instead of a raw error.
const (
	ReplyNoAnswer     = "Sorry, I could not process your request."
	ReplyRequestError = "Sorry, there was an error processing your request. Please try again."
)

// Message is a single entry in the chat transcript. Messages are immutable
// once appended; transcript ordering is append order.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUserMessage builds a user message stamped with the current time.
func NewUserMessage(text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    SenderUser,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage builds an assistant message stamped with the current time.
func NewAssistantMessage(text string) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    SenderAssistant,
		Text:      text,
		Timestamp: time.Now(),
	}
}
