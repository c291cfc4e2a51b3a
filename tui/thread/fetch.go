package thread

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/blogcomments/domain"
	"github.com/CrestNiraj12/blogcomments/tui/common"
)

// pageCmd performs the request only; state bookkeeping lives in fetchPage.
func (m Model) pageCmd(page int, reset bool, order domain.Order) tea.Cmd {
	threads := m.threads
	postID := m.postID
	limit := m.limit
	return func() tea.Msg {
		res, err := threads.FetchPage(context.Background(), postID, page, limit, order)
		if err != nil {
			return PageErrorMsg{Page: page, Reset: reset, Order: order, Err: err}
		}
		return PageLoadedMsg{Page: page, Reset: reset, Order: order, Result: res}
	}
}

// fetchPage requests a page unless the same page is already in flight.
// reset replaces the list instead of appending to it.
func (m *Model) fetchPage(page int, reset bool, order domain.Order) tea.Cmd {
	if m.postID == 0 {
		m.tree = []domain.Comment{}
		m.hasMore = false
		m.loading = false
		m.initialLoaded = true
		return nil
	}
	if m.inFlight[page] {
		return nil
	}
	m.inFlight[page] = true
	m.loading = true
	return m.pageCmd(page, reset, order)
}

// LoadMore fetches the next page in append mode.
func (m *Model) LoadMore() tea.Cmd {
	if !m.hasMore || m.loading {
		return nil
	}
	return m.fetchPage(m.page+1, false, m.order)
}

// ChangeOrder switches the sort order and reloads from page 1. It is ignored
// while loading, for the current order and for unknown orders.
func (m *Model) ChangeOrder(raw string) tea.Cmd {
	if m.loading {
		return nil
	}
	order, err := domain.ParseOrder(raw)
	if err != nil {
		m.log.Debug().Err(err).Msg("order change rejected")
		return nil
	}
	if order == m.order {
		return nil
	}
	m.order = order
	m.page = 1
	return tea.Batch(
		m.fetchPage(1, true, order),
		func() tea.Msg { return OrderChangedMsg{Order: order} },
	)
}

// Refresh reloads page 1 with the current order.
func (m *Model) Refresh() tea.Cmd {
	if m.loading {
		return nil
	}
	return m.fetchPage(1, true, m.order)
}

func (m *Model) finishFetch(page int) {
	delete(m.inFlight, page)
	m.loading = len(m.inFlight) > 0
}

func (m Model) handlePageLoaded(msg PageLoadedMsg) (Model, tea.Cmd) {
	m.finishFetch(msg.Page)
	if msg.Order != m.order {
		return m, nil
	}

	incoming := domain.NormalizeComments(msg.Result.Comments, "")
	if msg.Reset || msg.Page == 1 {
		m.tree = incoming
		m.selectedID = ""
	} else {
		m.tree = domain.MergeByID(m.tree, incoming)
	}

	m.meta = msg.Result.Meta
	if m.meta.CurrentPage > 0 {
		m.page = m.meta.CurrentPage
	} else {
		m.page = msg.Page
	}
	m.hasMore = m.meta.CurrentPage < m.meta.TotalPages
	m.initialLoaded = true
	return m, nil
}

func (m Model) handlePageError(msg PageErrorMsg) (Model, tea.Cmd) {
	m.finishFetch(msg.Page)
	m.log.Warn().Err(msg.Err).Int("page", msg.Page).Int64("post_id", m.postID).Msg("comment page fetch failed")
	if msg.Page == 1 {
		m.tree = []domain.Comment{}
		m.hasMore = false
		m.selectedID = ""
	}
	m.initialLoaded = true
	return m, common.Notify(common.NoticeError, fmt.Sprintf("Could not load comments: %v", msg.Err))
}
