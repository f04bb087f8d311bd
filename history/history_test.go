package history_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevSars24/ai-mentor/history"
	"github.com/DevSars24/ai-mentor/memory"
)

func TestMemStore_AppendAndLoad(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemStore(0)

	require.NoError(t, store.Append(ctx, memory.InteractionRecord{Query: "q1", Answer: "a1"}))
	require.NoError(t, store.Append(ctx, memory.InteractionRecord{Query: "q2", Answer: "a2"}))

	records, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "q1", records[0].Query)
	assert.Equal(t, "q2", records[1].Query)
	assert.NotEmpty(t, records[0].ID, "appended records get an ID")
	assert.False(t, records[0].Timestamp.IsZero(), "appended records get a timestamp")
}

func TestMemStore_CapEvictsOldest(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemStore(1000)

	for i := 0; i < 1001; i++ {
		err := store.Append(ctx, memory.InteractionRecord{Query: fmt.Sprintf("q%d", i)})
		require.NoError(t, err)
	}

	records, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1000)
	assert.Equal(t, "q1", records[0].Query, "oldest record was evicted")
	assert.Equal(t, "q1000", records[999].Query)
}

func TestMemStore_LoadReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemStore(10)
	require.NoError(t, store.Append(ctx, memory.InteractionRecord{Query: "q1"}))

	records, err := store.Load(ctx)
	require.NoError(t, err)
	records[0].Query = "mutated"

	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "q1", again[0].Query, "mutating a snapshot must not affect the store")
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "memory.jsonl")

	store, err := history.NewFileStore(path, 10)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, memory.InteractionRecord{Query: "persisted", Answer: "yes"}))

	reopened, err := history.NewFileStore(path, 10)
	require.NoError(t, err)
	records, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "persisted", records[0].Query)
	assert.Equal(t, "yes", records[0].Answer)
}

func TestFileStore_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.jsonl")
	content := `{"id":"1","query":"good","answer":"a"}
this is not json
{"id":"2","query":"also good","answer":"b"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store, err := history.NewFileStore(path, 10)
	require.NoError(t, err)
	records, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "good", records[0].Query)
	assert.Equal(t, "also good", records[1].Query)
}

func TestFileStore_CapCompactsFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "memory.jsonl")

	store, err := history.NewFileStore(path, 3)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		err := store.Append(ctx, memory.InteractionRecord{Query: fmt.Sprintf("q%d", i)})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, store.Len())

	reopened, err := history.NewFileStore(path, 3)
	require.NoError(t, err)
	records, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "q2", records[0].Query)
	assert.Equal(t, "q4", records[2].Query)
}
