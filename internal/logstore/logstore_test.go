package logstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxkey/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndRecent(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, domain.LogEntry{
		SessionID:       "s1",
		Kind:            domain.LogKindInsertion,
		RawText:         "um hello world",
		EditedText:      "Hello world.",
		HasEdited:       true,
		DurationSeconds: 1.5,
	}))
	require.NoError(t, s.Append(ctx, domain.LogEntry{
		SessionID:       "s2",
		Kind:            domain.LogKindCommand,
		RawText:         "new line",
		DurationSeconds: 0.8,
	}))

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "s2", entries[0].SessionID, "newest first")
	assert.Equal(t, domain.LogKindCommand, entries[0].Kind)
	assert.False(t, entries[0].HasEdited)

	assert.Equal(t, "s1", entries[1].SessionID)
	assert.Equal(t, "um hello world", entries[1].RawText)
	assert.Equal(t, "Hello world.", entries[1].EditedText)
	assert.True(t, entries[1].HasEdited)
	assert.InDelta(t, 1.5, entries[1].DurationSeconds, 0.001)
	assert.False(t, entries[1].CreatedAt.IsZero())
}

func TestRecentHonorsLimit(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Append(ctx, domain.LogEntry{
			SessionID: "s",
			Kind:      domain.LogKindInsertion,
			RawText:   "text",
		}))
	}

	entries, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestStats(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, domain.LogEntry{
		SessionID:  "s1",
		Kind:       domain.LogKindInsertion,
		RawText:    "um so three words here kind of",
		EditedText: "Three words here.",
		HasEdited:  true,
	}))
	require.NoError(t, s.Append(ctx, domain.LogEntry{
		SessionID: "s2",
		Kind:      domain.LogKindInsertion,
		RawText:   "one two",
	}))
	require.NoError(t, s.Append(ctx, domain.LogEntry{
		SessionID: "s3",
		Kind:      domain.LogKindCommand,
		RawText:   "delete that",
	}))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalTranscriptions)
	assert.Equal(t, int64(1), stats.TotalCommands)
	assert.Equal(t, int64(5), stats.TotalWords, "edited text counted when present")
}

func TestStatsOnEmptyStore(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalTranscriptions)
	assert.Zero(t, stats.TotalWords)
	assert.Zero(t, stats.TotalCommands)
}

func TestExplicitCreatedAtPreserved(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	require.NoError(t, s.Append(ctx, domain.LogEntry{
		SessionID: "s1",
		Kind:      domain.LogKindInsertion,
		RawText:   "text",
		CreatedAt: at,
	}))

	entries, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, at.Unix(), entries[0].CreatedAt.Unix())
}
