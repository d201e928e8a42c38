package bridge

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"doc-chat-shell/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateDeliversEnvelope(t *testing.T) {
	b := New(watermill.NopLogger{})
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := b.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, b.Update("s1", "hello"))

	select {
	case msg := <-messages:
		var env Envelope
		require.NoError(t, json.Unmarshal(msg.Payload, &env))
		msg.Ack()

		assert.Equal(t, events.TypeExchangeCompleted, env.Type)
		assert.Equal(t, "s1", env.SessionId)
		assert.Equal(t, "hello", env.LastMessage)
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestPublishCarriesEventFields(t *testing.T) {
	b := New(watermill.NopLogger{})
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := b.Subscribe(ctx)
	require.NoError(t, err)

	occurred := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	require.NoError(t, b.Publish(events.ExchangeCompletedEvent{
		SessionId:   "s7",
		LastMessage: "latest",
		OccurredAt:  occurred,
	}))

	select {
	case msg := <-messages:
		var env Envelope
		require.NoError(t, json.Unmarshal(msg.Payload, &env))
		msg.Ack()

		assert.Equal(t, events.TypeExchangeCompleted, env.Type)
		assert.Equal(t, "s7", env.SessionId)
		assert.Equal(t, "latest", env.LastMessage)
		assert.True(t, occurred.Equal(env.OccurredAt))
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestRefreshDeliversEnvelope(t *testing.T) {
	b := New(watermill.NopLogger{})
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := b.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, b.Refresh())

	select {
	case msg := <-messages:
		var env Envelope
		require.NoError(t, json.Unmarshal(msg.Payload, &env))
		msg.Ack()

		assert.Equal(t, events.TypeCacheRefresh, env.Type)
		assert.Empty(t, env.SessionId)
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}
