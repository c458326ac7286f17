package agent

import (
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
)

func TestSessionStoreHistoryIsCopied(t *testing.T) {
	store := NewSessionStore()

	assert.Empty(t, store.History("missing"))

	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock("My order_id is 7 and my name is guest.")),
		anthropic.NewUserMessage(anthropic.NewTextBlock("What pizzas do you have?")),
	}
	store.Replace("s1", messages)

	got := store.History("s1")
	assert.Len(t, got, 2)

	// Mutating the returned slice must not leak into the store.
	got[0] = anthropic.NewUserMessage(anthropic.NewTextBlock("tampered"))
	fresh := store.History("s1")
	assert.Equal(t, messages[0], fresh[0])
}

func TestSessionStoreIsolatesSessions(t *testing.T) {
	store := NewSessionStore()

	store.Replace("a", []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock("first")),
	})
	store.Replace("b", []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock("second")),
		anthropic.NewUserMessage(anthropic.NewTextBlock("third")),
	})

	assert.Len(t, store.History("a"), 1)
	assert.Len(t, store.History("b"), 2)
}
