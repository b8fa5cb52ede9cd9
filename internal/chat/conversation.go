// Package chat manages one conversation with the assistant: an ordered
// message log and the lifecycle of outbound requests. A conversation
// allows at most one request in flight; further sends are dropped rather
// than queued.
package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mollysec/molly/internal/api"
	"github.com/mollysec/molly/internal/debug"
)

var log = debug.GetLogger()

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Message is one entry of the conversation log, immutable once appended.
type Message struct {
	Sender Sender
	Text   string
}

// Service is the remote chat operation a conversation depends on.
type Service interface {
	SendChatMessage(ctx context.Context, message string) api.ChatResult
}

// Conversation owns its message log exclusively. It is created empty when
// the chat view mounts and discarded with it; nothing is persisted.
type Conversation struct {
	id      string
	service Service

	mu       sync.Mutex
	messages []Message
	pending  bool

	subscribers      map[int]func()
	nextSubscriberID int
}

// NewConversation creates an empty conversation over the given service.
func NewConversation(service Service) *Conversation {
	return &Conversation{
		id:          uuid.New().String()[:8],
		service:     service,
		subscribers: map[int]func(){},
	}
}

// ID of this conversation, used for log correlation only.
func (c *Conversation) ID() string {
	return c.id
}

// Messages returns a copy of the log in append order.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	messages := make([]Message, len(c.messages))
	copy(messages, c.messages)
	return messages
}

// Pending reports whether a request is in flight.
func (c *Conversation) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Subscribe registers a callback invoked synchronously after every log or
// pending-flag change. It returns an unsubscribe function.
func (c *Conversation) Subscribe(fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSubscriberID
	c.nextSubscriberID++
	c.subscribers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// SendMessage runs one chat turn and blocks until the assistant's reply
// (or the fallback) is appended. Empty input and calls made while a
// request is already in flight are dropped silently.
//
// The user message is appended before any network activity, so observers
// see it immediately. The assistant message always follows it; a failed
// request still consumes the turn with exactly one fallback message.
func (c *Conversation) SendMessage(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return
	}
	c.messages = append(c.messages, Message{Sender: SenderUser, Text: text})
	c.pending = true
	subscribers := c.subscribersLocked()
	c.mu.Unlock()
	notify(subscribers)

	result := c.service.SendChatMessage(ctx, text)

	c.mu.Lock()
	c.messages = append(c.messages, Message{Sender: SenderAssistant, Text: result.ReplyText()})
	c.pending = false
	total := len(c.messages)
	subscribers = c.subscribersLocked()
	c.mu.Unlock()
	notify(subscribers)

	log.Debug("chat turn completed", "conversation_id", c.id, "messages", total)
}

func (c *Conversation) subscribersLocked() []func() {
	subscribers := make([]func(), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subscribers = append(subscribers, fn)
	}
	return subscribers
}

// notify runs outside the lock so callbacks may read the conversation.
func notify(subscribers []func()) {
	for _, fn := range subscribers {
		fn()
	}
}
