package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/enrollment-intake/internal/storage"
	"github.com/aanand-mishra/enrollment-intake/internal/testutil"
	"github.com/aanand-mishra/enrollment-intake/internal/types"
)

// compile-time check that SQLite satisfies the queue contract
var _ storage.Queue = (*SQLite)(nil)

func entry(localID string) types.PendingEnrollment {
	return types.PendingEnrollment{
		LocalID:    localID,
		Record:     testutil.ValidRecord(),
		CapturedAt: testutil.Today,
		Status:     types.StatusPendingReview,
		SyncStatus: types.SyncStatusPending,
	}
}

func openTemp(t *testing.T) (*SQLite, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "queue.db")
	q, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = q.Close() })
	return q, path
}

func TestSQLite_AppendAndGet(t *testing.T) {
	ctx := context.Background()
	q, _ := openTemp(t)

	id, err := q.Append(ctx, entry("local_1"))
	require.NoError(t, err)
	assert.Equal(t, "local_1", id)

	got, err := q.GetPending(ctx, "local_1")
	require.NoError(t, err)
	assert.Equal(t, testutil.ValidRecord(), got.Record)
	assert.True(t, testutil.Today.Equal(got.CapturedAt))
	assert.Equal(t, types.StatusPendingReview, got.Status)
	assert.Equal(t, types.SyncStatusPending, got.SyncStatus)
}

func TestSQLite_Errors(t *testing.T) {
	ctx := context.Background()
	q, _ := openTemp(t)

	t.Run("unknown id", func(t *testing.T) {
		_, err := q.GetPending(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := q.Append(ctx, entry("local_dup"))
		require.NoError(t, err)
		_, err = q.Append(ctx, entry("local_dup"))
		assert.ErrorIs(t, err, storage.ErrDuplicateID)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := q.Append(ctx, entry(""))
		assert.Error(t, err)
	})
}

func TestSQLite_ListPending(t *testing.T) {
	ctx := context.Background()
	q, _ := openTemp(t)

	empty, err := q.ListPending(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, id := range []string{"local_b", "local_a", "local_c"} {
		_, err := q.Append(ctx, entry(id))
		require.NoError(t, err)
	}

	list, err := q.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "local_b", list[0].LocalID)
	assert.Equal(t, "local_a", list[1].LocalID)
	assert.Equal(t, "local_c", list[2].LocalID)
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	q, path := openTemp(t)

	_, err := q.Append(ctx, entry("local_keep"))
	require.NoError(t, err)
	require.NoError(t, q.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetPending(ctx, "local_keep")
	require.NoError(t, err)
	assert.Equal(t, testutil.ValidRecord(), got.Record)
}

func TestSQLite_ConcurrentAppends(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	q, _ := openTemp(t)

	const writers = 16
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := q.Append(ctx, entry(fmt.Sprintf("local_%02d", i)))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	list, err := q.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, list, writers)
}
