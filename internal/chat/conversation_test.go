package chat

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mollysec/molly/internal/api"
)

type stubService struct {
	calls int32
	reply func(message string) api.ChatResult
}

func (s *stubService) SendChatMessage(ctx context.Context, message string) api.ChatResult {
	atomic.AddInt32(&s.calls, 1)
	return s.reply(message)
}

func echoService() *stubService {
	return &stubService{reply: func(message string) api.ChatResult {
		return api.ChatResult{Response: &api.ChatPayload{Response: "eco: " + message}}
	}}
}

func TestNewConversationIsEmpty(t *testing.T) {
	c := NewConversation(echoService())

	require.NotEmpty(t, c.ID())
	require.Empty(t, c.Messages())
	require.False(t, c.Pending())
}

func TestEmptyInputIsDropped(t *testing.T) {
	service := echoService()
	c := NewConversation(service)

	for _, text := range []string{"", "   ", "\t\n "} {
		c.SendMessage(context.Background(), text)
	}

	require.Empty(t, c.Messages())
	require.Zero(t, atomic.LoadInt32(&service.calls))
}

func TestTurnAppendsUserThenAssistant(t *testing.T) {
	c := NewConversation(echoService())

	c.SendMessage(context.Background(), "hola")

	require.Equal(t, []Message{
		{Sender: SenderUser, Text: "hola"},
		{Sender: SenderAssistant, Text: "eco: hola"},
	}, c.Messages())
	require.False(t, c.Pending())
}

func TestInputIsTrimmedBeforeAppending(t *testing.T) {
	c := NewConversation(echoService())

	c.SendMessage(context.Background(), "  hola  ")

	messages := c.Messages()
	require.Len(t, messages, 2)
	require.Equal(t, "hola", messages[0].Text)
}

func TestSequentialTurnsKeepOrder(t *testing.T) {
	c := NewConversation(echoService())

	c.SendMessage(context.Background(), "a")
	c.SendMessage(context.Background(), "b")

	require.Equal(t, []Message{
		{Sender: SenderUser, Text: "a"},
		{Sender: SenderAssistant, Text: "eco: a"},
		{Sender: SenderUser, Text: "b"},
		{Sender: SenderAssistant, Text: "eco: b"},
	}, c.Messages())
}

func TestFailedTurnAppendsFallback(t *testing.T) {
	service := &stubService{reply: func(string) api.ChatResult {
		return api.ChatResult{Error: "x"}
	}}
	c := NewConversation(service)

	c.SendMessage(context.Background(), "hola")

	messages := c.Messages()
	require.Len(t, messages, 2)
	require.Equal(t, SenderAssistant, messages[1].Sender)
	// The raw error string never reaches the log.
	require.Equal(t, api.ReplyFallback, messages[1].Text)
	require.False(t, c.Pending())
}

func TestUserMessageVisibleWhileInFlight(t *testing.T) {
	c := NewConversation(nil)

	var observedLog []Message
	var observedPending bool
	c.service = &stubService{reply: func(string) api.ChatResult {
		observedLog = c.Messages()
		observedPending = c.Pending()
		return api.ChatResult{Response: &api.ChatPayload{Response: "ok"}}
	}}

	c.SendMessage(context.Background(), "hola")

	require.Equal(t, []Message{{Sender: SenderUser, Text: "hola"}}, observedLog)
	require.True(t, observedPending)
}

func TestSendWhilePendingIsDropped(t *testing.T) {
	release := make(chan struct{})
	service := &stubService{reply: func(string) api.ChatResult {
		<-release
		return api.ChatResult{Response: &api.ChatPayload{Response: "ok"}}
	}}
	c := NewConversation(service)

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.SendMessage(context.Background(), "first")
	}()

	require.Eventually(t, c.Pending, time.Second, time.Millisecond)

	// Returns immediately without queueing.
	c.SendMessage(context.Background(), "second")
	require.Len(t, c.Messages(), 1)

	close(release)
	<-done

	require.Equal(t, []Message{
		{Sender: SenderUser, Text: "first"},
		{Sender: SenderAssistant, Text: "ok"},
	}, c.Messages())
	require.Equal(t, int32(1), atomic.LoadInt32(&service.calls))
}

func TestSubscribersNotifiedTwicePerTurn(t *testing.T) {
	c := NewConversation(echoService())

	var notifications int
	unsubscribe := c.Subscribe(func() { notifications++ })

	c.SendMessage(context.Background(), "hola")
	require.Equal(t, 2, notifications)

	unsubscribe()
	c.SendMessage(context.Background(), "otra")
	require.Equal(t, 2, notifications)
}

func TestSubscriberMayReadConversation(t *testing.T) {
	c := NewConversation(echoService())

	// Callbacks run outside the lock; reading back must not deadlock.
	var lengths []int
	c.Subscribe(func() {
		lengths = append(lengths, len(c.Messages()))
	})

	c.SendMessage(context.Background(), "hola")
	require.Equal(t, []int{1, 2}, lengths)
}
