package thread

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/blogcomments/tui/compose"
)

// Update applies msg to the latest state. Every async result lands here, so
// completions arriving out of order never overwrite each other.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	m, cmd := m.update(msg)
	m.syncSubscriptions()
	m.ensureSelection()
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.composing {
			m.composer.SetWidth(m.composerWidth(m.composer.ParentID()))
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PageLoadedMsg:
		return m.handlePageLoaded(msg)
	case PageErrorMsg:
		return m.handlePageError(msg)
	case LikeResultMsg:
		return m.handleLikeResult(msg)
	case CreateResultMsg:
		return m.handleCreateResult(msg)
	case DeleteResultMsg:
		return m.handleDeleteResult(msg)
	case RepliesLoadedMsg:
		return m.handleRepliesLoaded(msg)
	case RepliesPushedMsg:
		return m.handleRepliesPushed(msg)
	case compose.DoneMsg:
		return m.handleComposeDone(msg)

	case tea.KeyMsg:
		if m.composing {
			var cmd tea.Cmd
			m.composer, cmd = m.composer.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}

	if m.composing {
		var cmd tea.Cmd
		m.composer, cmd = m.composer.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirmDelete != "" {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			cmd := m.ConfirmDelete()
			return m, cmd
		case key.Matches(msg, m.keys.Cancel):
			m.CancelDelete()
		}
		return m, nil
	}

	if m.showHints {
		if key.Matches(msg, m.keys.ToggleHints, m.keys.Cancel, m.keys.Quit, m.keys.Toggle) {
			m.showHints = false
		}
		return m, nil
	}

	selected := m.SelectedID()

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.moveSelection(1) {
			cmd = m.LoadMore()
		}
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Top):
		m.selectEdge(false)
	case key.Matches(msg, m.keys.Bottom):
		m.selectEdge(true)
		cmd = m.LoadMore()
	case key.Matches(msg, m.keys.Toggle):
		m.toggleCollapsed(selected)
	case key.Matches(msg, m.keys.Like):
		cmd = m.ToggleLike(selected)
	case key.Matches(msg, m.keys.Reply):
		cmd = m.StartReply(selected)
	case key.Matches(msg, m.keys.Comment):
		cmd = m.StartComment()
	case key.Matches(msg, m.keys.CommentEditor):
		cmd = m.StartCommentInEditor()
	case key.Matches(msg, m.keys.Delete):
		cmd = m.RequestDelete(selected)
	case key.Matches(msg, m.keys.Order):
		cmd = m.ChangeOrder(string(m.order.Next()))
	case key.Matches(msg, m.keys.LoadMore):
		cmd = m.LoadMore()
	case key.Matches(msg, m.keys.LoadReplies):
		cmd = m.LoadReplies(selected)
	case key.Matches(msg, m.keys.Refresh):
		cmd = m.Refresh()
	case key.Matches(msg, m.keys.ToggleHints):
		m.showHints = true
	}
	return m, cmd
}

// ensureSelection falls back to the first node when the selection vanished.
func (m *Model) ensureSelection() {
	if m.isVisible(m.selectedID) {
		return
	}
	m.selectedID = ""
	if nodes := m.visibleNodes(); len(nodes) > 0 {
		m.selectedID = nodes[0].Comment.ID
	}
}
