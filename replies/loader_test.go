package replies

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/blogcomments/domain"
)

type stubThreads struct {
	calls   atomic.Int32
	replies []domain.Comment
	err     error
	block   bool
	limit   int
}

func (s *stubThreads) FetchPage(context.Context, int64, int, int, domain.Order) (domain.CommentPage, error) {
	return domain.CommentPage{}, nil
}

func (s *stubThreads) FetchReplies(ctx context.Context, _ string, limit int) ([]domain.Comment, error) {
	s.calls.Add(1)
	s.limit = limit
	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.replies, s.err
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(10, time.Minute)
	require.NoError(t, err)
	return s
}

func TestLoader_CachesResult(t *testing.T) {
	threads := &stubThreads{replies: []domain.Comment{{ID: "r1"}}}
	l := NewLoader(threads, newTestStore(t))

	first, err := l.LoadReplies(context.Background(), "c1")
	require.NoError(t, err)
	second, err := l.LoadReplies(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, int32(1), threads.calls.Load())
	assert.Equal(t, Limit, threads.limit)
	assert.Equal(t, first, second)
	assert.Equal(t, "c1", first[0].ParentID)
}

func TestLoader_InvalidateForcesRefetch(t *testing.T) {
	threads := &stubThreads{replies: []domain.Comment{{ID: "r1"}}}
	l := NewLoader(threads, newTestStore(t))

	_, _ = l.LoadReplies(context.Background(), "c1")
	l.Invalidate("c1")
	_, _ = l.LoadReplies(context.Background(), "c1")

	assert.Equal(t, int32(2), threads.calls.Load())
}

func TestLoader_NotFoundIsEmpty(t *testing.T) {
	threads := &stubThreads{err: domain.ErrNotFound}
	l := NewLoader(threads, newTestStore(t))

	got, err := l.LoadReplies(context.Background(), "c1")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestLoader_TimeoutResolvesEmpty(t *testing.T) {
	store := newTestStore(t)
	l := NewLoader(&stubThreads{block: true}, store, WithTimeout(20*time.Millisecond))

	start := time.Now()
	got, err := l.LoadReplies(context.Background(), "c1")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Less(t, time.Since(start), 2*time.Second)

	// a timed out load is not cached
	l = NewLoader(&stubThreads{replies: []domain.Comment{{ID: "r1"}}}, store)
	got, err = l.LoadReplies(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestLoader_OtherErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	threads := &stubThreads{err: boom}
	l := NewLoader(threads, newTestStore(t))

	_, err := l.LoadReplies(context.Background(), "c1")
	assert.ErrorIs(t, err, boom)
}

func TestLoader_DefaultTimeout(t *testing.T) {
	l := NewLoader(&stubThreads{}, newTestStore(t))
	assert.Equal(t, 5*time.Second, l.timeout)
}
