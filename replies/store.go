package replies

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/CrestNiraj12/blogcomments/domain"
)

const (
	// DefaultTTL is how long a lazily loaded reply list stays fresh.
	DefaultTTL = 2 * time.Minute

	// DefaultSize bounds the number of cached comment ids.
	DefaultSize = 500
)

type cacheItem struct {
	replies   []domain.Comment
	expiresAt time.Time
}

// Store is an in-memory TTL cache of reply lists keyed by comment id.
// It is safe for concurrent use.
type Store struct {
	cache *lru.Cache[string, cacheItem]
	ttl   time.Duration
	now   func() time.Time
}

// NewStore creates a Store holding at most size entries for ttl each.
func NewStore(size int, ttl time.Duration) (*Store, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c, err := lru.New[string, cacheItem](size)
	if err != nil {
		return nil, fmt.Errorf("creating reply cache: %w", err)
	}
	return &Store{cache: c, ttl: ttl, now: time.Now}, nil
}

// Get returns the cached replies of commentID, if present and fresh.
func (s *Store) Get(commentID string) ([]domain.Comment, bool) {
	item, ok := s.cache.Get(commentID)
	if !ok {
		return nil, false
	}
	if s.now().After(item.expiresAt) {
		s.cache.Remove(commentID)
		return nil, false
	}
	return append([]domain.Comment{}, item.replies...), true
}

// Set caches replies for commentID.
func (s *Store) Set(commentID string, replies []domain.Comment) {
	s.cache.Add(commentID, cacheItem{
		replies:   append([]domain.Comment{}, replies...),
		expiresAt: s.now().Add(s.ttl),
	})
}

// Delete drops commentID from the cache.
func (s *Store) Delete(commentID string) {
	s.cache.Remove(commentID)
}

// Len returns the number of cached entries, fresh or not.
func (s *Store) Len() int {
	return s.cache.Len()
}
