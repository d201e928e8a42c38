package local

import (
	"path/filepath"
	"strings"
	"testing"

	"doc-chat-shell/internal/constant"
	"doc-chat-shell/internal/pkg/logger"
	"doc-chat-shell/pkg/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *SummaryRepository {
	t.Helper()
	return NewSummaryRepository(kvstore.NewMemoryStore(), logger.NewNopLogger())
}

func TestLoadEmpty(t *testing.T) {
	repo := newTestRepository(t)

	summaries := repo.Load()

	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestLoadCorruptCache(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "definitely not json{{"},
		{name: "wrong shape", raw: `{"a": 1}`},
		{name: "empty value", raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := kvstore.NewMemoryStore()
			require.NoError(t, store.Set(constant.SummaryStorageKey, []byte(tt.raw)))

			repo := NewSummaryRepository(store, logger.NewNopLogger())

			summaries := repo.Load()
			assert.Empty(t, summaries)
		})
	}
}

func TestUpsertInsertsAtFront(t *testing.T) {
	repo := newTestRepository(t)

	repo.Upsert("a", "first question")
	summaries := repo.Upsert("b", "second question")

	require.Len(t, summaries, 2)
	assert.Equal(t, "b", summaries[0].Id)
	assert.Equal(t, "a", summaries[1].Id)
	assert.Equal(t, 1, summaries[0].MessageCount)
}

func TestUpsertMovesToFront(t *testing.T) {
	repo := newTestRepository(t)

	repo.Upsert("a", "m1")
	repo.Upsert("b", "m2")
	summaries := repo.Upsert("a", "m3")

	require.Len(t, summaries, 2)
	assert.Equal(t, "a", summaries[0].Id)
	assert.Equal(t, "b", summaries[1].Id)
	assert.Equal(t, 2, summaries[0].MessageCount)
	assert.Equal(t, "m3", summaries[0].LastMessage)
}

func TestTitleAssignedExactlyOnce(t *testing.T) {
	repo := newTestRepository(t)

	repo.Upsert("a", "the very first message")
	repo.Upsert("a", "a later message")
	summaries := repo.Upsert("a", "and one more")

	require.Len(t, summaries, 1)
	assert.Equal(t, "the very first message", summaries[0].Title)
	assert.Equal(t, "and one more", summaries[0].LastMessage)
	assert.Equal(t, 3, summaries[0].MessageCount)
}

func TestTitleTruncation(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		wantTitle string
	}{
		{
			name:      "short message verbatim",
			message:   "hello",
			wantTitle: "hello",
		},
		{
			name:      "exactly thirty runes verbatim",
			message:   strings.Repeat("x", 30),
			wantTitle: strings.Repeat("x", 30),
		},
		{
			name:      "thirty one runes truncated",
			message:   strings.Repeat("x", 31),
			wantTitle: strings.Repeat("x", 30) + "…",
		},
		{
			name:      "multibyte runes counted as runes",
			message:   strings.Repeat("あ", 35),
			wantTitle: strings.Repeat("あ", 30) + "…",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepository(t)

			summaries := repo.Upsert("s", tt.message)

			require.Len(t, summaries, 1)
			assert.Equal(t, tt.wantTitle, summaries[0].Title)
		})
	}
}

func TestRemove(t *testing.T) {
	repo := newTestRepository(t)

	repo.Upsert("a", "m1")
	repo.Upsert("b", "m2")

	summaries := repo.Remove("a")
	require.Len(t, summaries, 1)
	assert.Equal(t, "b", summaries[0].Id)

	// Removing an absent id is a no-op
	summaries = repo.Remove("a")
	require.Len(t, summaries, 1)
	assert.Equal(t, "b", summaries[0].Id)
}

func TestRemoveLastEntryDropsStorageKey(t *testing.T) {
	store := kvstore.NewMemoryStore()
	repo := NewSummaryRepository(store, logger.NewNopLogger())

	repo.Upsert("a", "only entry")
	summaries := repo.Remove("a")

	assert.Empty(t, summaries)
	assert.Empty(t, repo.Load())

	_, ok := store.Get(constant.SummaryStorageKey)
	assert.False(t, ok, "empty list must not linger under the storage key")
}

func TestPersistenceAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")

	store, err := kvstore.NewFileStore(path)
	require.NoError(t, err)

	repo := NewSummaryRepository(store, logger.NewNopLogger())
	repo.Upsert("a", "kept across reloads")

	// A fresh store + repository reads the same file, like a page reload.
	reloadedStore, err := kvstore.NewFileStore(path)
	require.NoError(t, err)

	reloaded := NewSummaryRepository(reloadedStore, logger.NewNopLogger())
	summaries := reloaded.Load()

	require.Len(t, summaries, 1)
	assert.Equal(t, "a", summaries[0].Id)
	assert.Equal(t, "kept across reloads", summaries[0].Title)
}
