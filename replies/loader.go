package replies

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/CrestNiraj12/blogcomments/app"
	"github.com/CrestNiraj12/blogcomments/domain"
)

const (
	// Limit is the page size requested from the replies endpoint.
	Limit = 50

	// DefaultTimeout aborts a lazy reply fetch.
	DefaultTimeout = 5 * time.Second
)

// Loader fetches the replies of a single comment on demand, outside the
// page-level fetch. Results are cached in a Store; concurrent loads of the same
// comment share one request.
type Loader struct {
	threads app.ThreadService
	store   *Store
	group   singleflight.Group
	timeout time.Duration
	log     zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithLogger sets the logger used for timeouts and misses.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// NewLoader creates a Loader backed by threads and store.
func NewLoader(threads app.ThreadService, store *Store, opts ...Option) *Loader {
	l := &Loader{
		threads: threads,
		store:   store,
		timeout: DefaultTimeout,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type fetchResult struct {
	replies []domain.Comment
	err     error
}

// LoadReplies returns the replies of commentID. A missing comment (404) and a
// timeout both resolve to an empty list; any other failure is returned.
func (l *Loader) LoadReplies(ctx context.Context, commentID string) ([]domain.Comment, error) {
	if cached, ok := l.store.Get(commentID); ok {
		return cached, nil
	}
	v, err, _ := l.group.Do(commentID, func() (any, error) {
		return l.fetch(ctx, commentID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Comment), nil
}

// Invalidate forgets the cached replies of commentID, e.g. after a new reply
// was posted under it.
func (l *Loader) Invalidate(commentID string) {
	l.store.Delete(commentID)
}

func (l *Loader) fetch(ctx context.Context, commentID string) ([]domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	done := make(chan fetchResult, 1)
	go func() {
		replies, err := l.threads.FetchReplies(ctx, commentID, Limit)
		done <- fetchResult{replies: replies, err: err}
	}()

	var res fetchResult
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
	}

	switch {
	case res.err == nil:
	case errors.Is(res.err, domain.ErrNotFound):
		l.log.Debug().Str("comment_id", commentID).Msg("no replies found")
		res.replies = nil
	case errors.Is(res.err, context.DeadlineExceeded), errors.Is(res.err, context.Canceled):
		l.log.Debug().Str("comment_id", commentID).Dur("timeout", l.timeout).Msg("reply fetch aborted")
		return []domain.Comment{}, nil
	default:
		return nil, fmt.Errorf("loading replies of %s: %w", commentID, res.err)
	}

	replies := domain.NormalizeComments(res.replies, commentID)
	l.store.Set(commentID, replies)
	return replies, nil
}
