package thread

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/blogcomments/domain"
	"github.com/CrestNiraj12/blogcomments/tui/common"
)

func twoPageThreads() *stubThreads {
	return &stubThreads{pages: map[int]domain.CommentPage{
		1: {
			Comments: sampleTree(),
			Meta:     domain.PageMeta{CurrentPage: 1, TotalPages: 2, TotalItems: 3, ItemsPerPage: 2},
		},
		2: {
			Comments: []domain.Comment{makeComment("c2", "u2"), makeComment("c3", "u3")},
			Meta:     domain.PageMeta{CurrentPage: 2, TotalPages: 2, TotalItems: 3, ItemsPerPage: 2},
		},
	}}
}

func loaded(t *testing.T, threads *stubThreads, deps Deps) Model {
	t.Helper()
	deps.PostID = 7
	deps.Threads = threads
	m := newTestModel(deps)
	m, _, _ = drive(t, m, m.Init())
	return m
}

func TestInitialLoad_ReplacesListAndSetsMeta(t *testing.T) {
	threads := twoPageThreads()
	m := newTestModel(Deps{PostID: 7, Threads: threads, Limit: 2})
	require.True(t, m.Loading())

	m, notices, _ := drive(t, m, m.Init())

	assert.Empty(t, notices)
	assert.False(t, m.Loading())
	assert.True(t, m.HasMore())
	assert.Equal(t, 1, m.Page())
	require.Len(t, m.Comments(), 2)
	assert.Equal(t, "c1", m.Comments()[0].Replies[0].ParentID)
	assert.Equal(t, "r1", m.Comments()[0].Replies[0].Replies[0].ParentID)
	assert.Equal(t, []fetchCall{{Page: 1, Limit: 2, Order: domain.DefaultOrder}}, threads.calls)
	assert.Equal(t, "c1", m.SelectedID())
}

func TestLoadMore_AppendsWithoutDuplicates(t *testing.T) {
	threads := twoPageThreads()
	m := loaded(t, threads, Deps{Limit: 2})

	m, _, _ = drive(t, m, m.LoadMore())

	var ids []string
	for _, c := range m.Comments() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"c1", "c2", "c3"}, ids)
	assert.Equal(t, 2, m.Page())
	assert.False(t, m.HasMore())
	assert.False(t, m.Loading())

	assert.Nil(t, m.LoadMore(), "no further pages")
}

func TestLoadMore_AtEndOfListViaKeys(t *testing.T) {
	threads := twoPageThreads()
	m := loaded(t, threads, Deps{Limit: 2})

	m, _ = press(t, m, "G")

	assert.Len(t, m.Comments(), 3)
	assert.Equal(t, 2, threads.callCount())
}

func TestFetchPage_SuppressesSamePageInFlight(t *testing.T) {
	threads := twoPageThreads()
	m := loaded(t, threads, Deps{Limit: 2})

	first := m.fetchPage(2, false, m.order)
	require.NotNil(t, first)
	assert.Nil(t, m.fetchPage(2, false, m.order))
	assert.Nil(t, m.LoadMore(), "load more is ignored while loading")
	assert.True(t, m.Loading())

	m, _, _ = drive(t, m, first)
	assert.False(t, m.Loading())
	assert.Equal(t, 2, threads.callCount())
}

func TestChangeOrder_ValidatesAndReloads(t *testing.T) {
	threads := twoPageThreads()
	m := loaded(t, threads, Deps{Limit: 2})
	m, _, _ = drive(t, m, m.LoadMore())
	require.Len(t, m.Comments(), 3)

	assert.Nil(t, m.ChangeOrder(string(domain.DefaultOrder)), "same order")
	assert.Nil(t, m.ChangeOrder("popular"), "unknown order")
	assert.Equal(t, domain.DefaultOrder, m.Order())

	cmd := m.ChangeOrder("newest")
	require.NotNil(t, cmd)
	assert.Equal(t, domain.OrderNewest, m.Order())
	assert.True(t, m.Loading())
	assert.Nil(t, m.ChangeOrder("oldest"), "rejected while loading")
	assert.Equal(t, domain.OrderNewest, m.Order())

	m, _, other := drive(t, m, cmd)
	assert.Contains(t, other, OrderChangedMsg{Order: domain.OrderNewest})
	assert.Len(t, m.Comments(), 2, "reset replaces the list")
	assert.Equal(t, 1, m.Page())
	last := threads.calls[len(threads.calls)-1]
	assert.Equal(t, fetchCall{Page: 1, Limit: 2, Order: domain.OrderNewest}, last)
}

func TestOrderKeyCyclesOrders(t *testing.T) {
	threads := twoPageThreads()
	m := loaded(t, threads, Deps{Limit: 2})

	m, _ = press(t, m, "o")

	assert.Equal(t, domain.DefaultOrder.Next(), m.Order())
}

func TestEmptyPost(t *testing.T) {
	threads := &stubThreads{pages: map[int]domain.CommentPage{
		1: {Comments: []domain.Comment{}, Meta: domain.PageMeta{CurrentPage: 1, TotalPages: 1, TotalItems: 0, ItemsPerPage: 10}},
	}}
	m := newTestModel(Deps{PostID: 3, Threads: threads})

	m, notices, _ := drive(t, m, m.Init())

	assert.NotNil(t, m.Comments())
	assert.Empty(t, m.Comments())
	assert.False(t, m.HasMore())
	assert.False(t, m.Loading())
	assert.Empty(t, notices)
	assert.Contains(t, m.View(), "No comments yet")
}

func TestNoPostResolvesImmediately(t *testing.T) {
	threads := &stubThreads{}
	m := newTestModel(Deps{Threads: threads})

	assert.False(t, m.Loading())
	assert.NotNil(t, m.Comments())
	m, _, _ = drive(t, m, m.Init())
	assert.Nil(t, m.Refresh())
	assert.False(t, m.Loading())
	assert.Zero(t, threads.callCount())
}

func TestInitialCommentsSkipNetwork(t *testing.T) {
	threads := &stubThreads{}
	m := newTestModel(Deps{PostID: 7, Threads: threads, Initial: sampleTree()})

	m, _, _ = drive(t, m, m.Init())

	assert.Zero(t, threads.callCount())
	assert.Len(t, m.Comments(), 2)
	assert.Equal(t, "c1", m.Comments()[0].Replies[0].ParentID)
}

func TestPageError_KeepsOrClearsList(t *testing.T) {
	threads := twoPageThreads()
	threads.errs = map[int]error{2: errors.New("boom")}
	m := loaded(t, threads, Deps{Limit: 2})

	m, notices, _ := drive(t, m, m.LoadMore())
	require.Len(t, notices, 1)
	assert.Equal(t, common.NoticeError, notices[0].Kind)
	assert.Len(t, m.Comments(), 2, "failed later page keeps the list")
	assert.False(t, m.Loading())

	threads.errs = map[int]error{1: errors.New("down")}
	m, notices, _ = drive(t, m, m.Refresh())
	require.Len(t, notices, 1)
	assert.Empty(t, m.Comments(), "failed first page clears the list")
	assert.False(t, m.Loading())
}
