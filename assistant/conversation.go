// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assistant

import (
	"sync"
	"time"

	"github.com/danielhkuo/uchaguzi-block/models"
)

// Greeting opens every transcript
const Greeting = "Habari! I am Uchaguzi Bot. Ask me about polling stations, how to vote from abroad, or how our blockchain security works."

// Conversation is an append-only chat transcript
type Conversation struct {
	mu       sync.Mutex
	now      func() time.Time
	messages []models.ChatMessage
}

// NewConversation starts a transcript with the assistant greeting
func NewConversation(now func() time.Time) *Conversation {
	if now == nil {
		now = time.Now
	}
	c := &Conversation{now: now}
	c.Append(models.RoleAssistant, Greeting)
	return c
}

// Append adds a message stamped with the current time and returns it
func (c *Conversation) Append(role, text string) models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := models.ChatMessage{Role: role, Text: text, Timestamp: c.now()}
	c.messages = append(c.messages, msg)
	return msg
}

// Messages returns a copy of the transcript in order
func (c *Conversation) Messages() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.ChatMessage(nil), c.messages...)
}
