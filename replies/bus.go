package replies

import (
	"sync"

	"github.com/ecodeclub/ekit/slice"

	"github.com/CrestNiraj12/blogcomments/domain"
)

// Callback receives replies pushed for the comment it was registered on.
type Callback func(replies []domain.Comment)

type subscriber struct {
	id uint64
	cb Callback
}

// Bus fans newly loaded replies out to every view currently showing the
// comment. It never merges anything itself; subscribers decide how to combine
// pushed replies with what they already hold.
type Bus struct {
	mu   sync.Mutex
	seq  uint64
	subs map[string][]subscriber
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscriber)}
}

// Register subscribes cb to commentID. The returned func removes exactly this
// subscription and may be called more than once.
func (b *Bus) Register(commentID string, cb Callback) (unregister func()) {
	b.mu.Lock()
	b.seq++
	id := b.seq
	b.subs[commentID] = append(b.subs[commentID], subscriber{id: id, cb: cb})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(commentID, id) })
	}
}

func (b *Bus) remove(commentID string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.subs[commentID]
	for i, s := range subs {
		if s.id != id {
			continue
		}
		rest := make([]subscriber, 0, len(subs)-1)
		rest = append(rest, subs[:i]...)
		rest = append(rest, subs[i+1:]...)
		if len(rest) == 0 {
			delete(b.subs, commentID)
		} else {
			b.subs[commentID] = rest
		}
		return
	}
}

// TriggerUpdate normalizes raw as replies of commentID and hands the result to
// every callback registered for it. Callbacks run on the caller's goroutine,
// outside the bus lock.
func (b *Bus) TriggerUpdate(commentID string, raw []any) {
	replies := domain.NormalizeAll(raw, commentID)

	b.mu.Lock()
	subs := append([]subscriber(nil), b.subs[commentID]...)
	b.mu.Unlock()

	for _, s := range subs {
		s.cb(append([]domain.Comment(nil), replies...))
	}
}

// Publish is TriggerUpdate for replies that are already typed.
func (b *Bus) Publish(commentID string, replies []domain.Comment) {
	b.TriggerUpdate(commentID, slice.Map(replies, func(_ int, c domain.Comment) any { return c }))
}

// Subscribers returns the number of live subscriptions for commentID.
func (b *Bus) Subscribers(commentID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[commentID])
}
