package replies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/blogcomments/domain"
)

func TestBus_FansOutToEverySubscriber(t *testing.T) {
	b := NewBus()
	var first, second [][]domain.Comment
	b.Register("c1", func(r []domain.Comment) { first = append(first, r) })
	b.Register("c1", func(r []domain.Comment) { second = append(second, r) })
	b.Register("other", func([]domain.Comment) { t.Fatalf("unexpected delivery for other id") })

	b.TriggerUpdate("c1", []any{map[string]any{"id": "r1", "content": "hi"}})

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "r1", first[0][0].ID)
	assert.Equal(t, "c1", first[0][0].ParentID)
	assert.NotNil(t, first[0][0].Replies)
}

func TestBus_NormalizesNestedPayload(t *testing.T) {
	b := NewBus()
	var got []domain.Comment
	b.Register("c1", func(r []domain.Comment) { got = r })

	b.TriggerUpdate("c1", []any{
		map[string]any{
			"id":       "r1",
			"authorId": "u9",
			"replies":  []any{map[string]any{"id": "r2"}},
		},
		"garbage",
	})

	require.Len(t, got, 2)
	assert.Equal(t, "u9", got[0].Author.ID)
	assert.Equal(t, domain.UnknownAuthorName, got[0].Author.Name)
	assert.Equal(t, "r1", got[0].Replies[0].ParentID)
	assert.Equal(t, "c1", got[1].ParentID)
	assert.Equal(t, domain.UnknownAuthorID, got[1].Author.ID)
}

func TestBus_UnregisterRemovesOnlyThatSubscription(t *testing.T) {
	b := NewBus()
	var a, c int
	unA := b.Register("c1", func([]domain.Comment) { a++ })
	b.Register("c1", func([]domain.Comment) { c++ })
	require.Equal(t, 2, b.Subscribers("c1"))

	unA()
	unA()
	assert.Equal(t, 1, b.Subscribers("c1"))

	b.TriggerUpdate("c1", nil)
	assert.Equal(t, 0, a)
	assert.Equal(t, 1, c)
}

func TestBus_TriggerWithoutSubscribers(t *testing.T) {
	b := NewBus()
	b.TriggerUpdate("nobody", []any{map[string]any{"id": "x"}})
	assert.Equal(t, 0, b.Subscribers("nobody"))
}

func TestBus_PublishTyped(t *testing.T) {
	b := NewBus()
	var got []domain.Comment
	b.Register("c1", func(r []domain.Comment) { got = r })

	b.Publish("c1", []domain.Comment{{ID: "r1", Author: domain.Author{ID: "u1", Name: "Ann"}}})

	require.Len(t, got, 1)
	assert.Equal(t, "Ann", got[0].Author.Name)
	assert.Equal(t, "c1", got[0].ParentID)
}
