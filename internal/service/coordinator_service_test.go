package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"doc-chat-shell/internal/entity"
	"doc-chat-shell/internal/pkg/logger"
	"doc-chat-shell/internal/repository/local"
	"doc-chat-shell/pkg/bridge"
	"doc-chat-shell/pkg/kvstore"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Fakes ---

type stubConversation struct {
	mu          sync.Mutex
	createCalls int
	switchIds   []string
}

func (s *stubConversation) Create(ctx context.Context) entity.ConversationTranscript {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	return entity.ConversationTranscript{SessionId: "fresh"}
}

func (s *stubConversation) Load(ctx context.Context, sessionId string) entity.ConversationTranscript {
	return entity.ConversationTranscript{SessionId: sessionId}
}

func (s *stubConversation) Send(ctx context.Context, text string) (entity.ConversationTranscript, error) {
	return entity.ConversationTranscript{}, nil
}

func (s *stubConversation) Switch(ctx context.Context, sessionId string) entity.ConversationTranscript {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.switchIds = append(s.switchIds, sessionId)
	return entity.ConversationTranscript{SessionId: sessionId}
}

func (s *stubConversation) Snapshot() entity.ConversationTranscript {
	return entity.ConversationTranscript{}
}

func (s *stubConversation) CreateCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createCalls
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (b *recordingBroadcaster) Broadcast(event string, data interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBroadcaster) Events() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	copy(out, b.events)
	return out
}

type coordinatorFixture struct {
	coordinator ICoordinatorService
	cache       *local.SummaryRepository
	sessions    *fakeSessionStore
	conv        *stubConversation
	broadcaster *recordingBroadcaster
	bridge      *bridge.Bridge
}

func newCoordinatorFixture(t *testing.T, sessions *fakeSessionStore) *coordinatorFixture {
	t.Helper()

	cache := local.NewSummaryRepository(kvstore.NewMemoryStore(), logger.NewNopLogger())
	conv := &stubConversation{}
	broadcaster := &recordingBroadcaster{}
	b := bridge.New(watermill.NopLogger{})
	t.Cleanup(func() { b.Close() })

	coordinator := NewCoordinatorService(conv, cache, sessions, b, broadcaster, logger.NewNopLogger())

	return &coordinatorFixture{
		coordinator: coordinator,
		cache:       cache,
		sessions:    sessions,
		conv:        conv,
		broadcaster: broadcaster,
		bridge:      b,
	}
}

// --- Tests ---

func TestSelectForwardsToConversation(t *testing.T) {
	f := newCoordinatorFixture(t, &fakeSessionStore{})

	f.coordinator.Select(context.Background(), "s1")

	assert.Equal(t, "s1", f.coordinator.SelectedSession())
	assert.Equal(t, []string{"s1"}, f.conv.switchIds)
}

func TestNewConversationClearsSelection(t *testing.T) {
	f := newCoordinatorFixture(t, &fakeSessionStore{})

	f.coordinator.Select(context.Background(), "s1")
	f.coordinator.NewConversation(context.Background())

	assert.Empty(t, f.coordinator.SelectedSession())
	assert.Equal(t, 1, f.conv.CreateCalls())
}

// Deleting the selected session always lands the user in a fresh,
// unselected conversation.
func TestDeleteSelectedSessionStartsFresh(t *testing.T) {
	f := newCoordinatorFixture(t, &fakeSessionStore{})
	f.cache.Upsert("s1", "hello")

	f.coordinator.Select(context.Background(), "s1")
	require.NoError(t, f.coordinator.Delete(context.Background(), "s1"))

	assert.Empty(t, f.coordinator.SelectedSession())
	assert.Equal(t, 1, f.conv.CreateCalls())
	assert.Empty(t, f.cache.Load())
	assert.Contains(t, f.sessions.deletedIds, "s1")
}

func TestDeleteUnselectedSessionKeepsConversation(t *testing.T) {
	f := newCoordinatorFixture(t, &fakeSessionStore{})
	f.cache.Upsert("s1", "one")
	f.cache.Upsert("s2", "two")

	f.coordinator.Select(context.Background(), "s1")
	require.NoError(t, f.coordinator.Delete(context.Background(), "s2"))

	assert.Equal(t, "s1", f.coordinator.SelectedSession())
	assert.Equal(t, 0, f.conv.CreateCalls())

	summaries := f.cache.Load()
	require.Len(t, summaries, 1)
	assert.Equal(t, "s1", summaries[0].Id)
}

func TestDeleteFailureLeavesCacheAndSelection(t *testing.T) {
	f := newCoordinatorFixture(t, &fakeSessionStore{deleteErr: errors.New("remote refused")})
	f.cache.Upsert("s1", "hello")

	f.coordinator.Select(context.Background(), "s1")
	err := f.coordinator.Delete(context.Background(), "s1")

	assert.Error(t, err)
	assert.Equal(t, "s1", f.coordinator.SelectedSession())
	require.Len(t, f.cache.Load(), 1)
}

func TestExchangeEventUpsertsCacheAndPromotesSelection(t *testing.T) {
	f := newCoordinatorFixture(t, &fakeSessionStore{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, f.coordinator.Run(ctx))

	require.NoError(t, f.bridge.Update("s9", "hello"))

	require.Eventually(t, func() bool {
		summaries := f.cache.Load()
		return len(summaries) == 1 && summaries[0].Id == "s9"
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, "s9", f.coordinator.SelectedSession())
	assert.Contains(t, f.broadcaster.Events(), "sessions_updated")
}

func TestExchangeEventKeepsExistingSelection(t *testing.T) {
	f := newCoordinatorFixture(t, &fakeSessionStore{})
	f.coordinator.Select(context.Background(), "s1")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, f.coordinator.Run(ctx))

	require.NoError(t, f.bridge.Update("s1", "hello"))

	require.Eventually(t, func() bool {
		return len(f.cache.Load()) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, "s1", f.coordinator.SelectedSession())
}

func TestRefreshEventBroadcastsCurrentCache(t *testing.T) {
	f := newCoordinatorFixture(t, &fakeSessionStore{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, f.coordinator.Run(ctx))

	require.NoError(t, f.bridge.Refresh())

	require.Eventually(t, func() bool {
		return len(f.broadcaster.Events()) > 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "sessions_updated", f.broadcaster.Events()[0])
}
