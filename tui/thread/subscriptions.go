package thread

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/blogcomments/domain"
	"github.com/CrestNiraj12/blogcomments/tui/common"
)

// syncSubscriptions keeps exactly one bus subscription per rendered node.
func (m Model) syncSubscriptions() {
	if m.bus == nil {
		return
	}
	rendered := make(map[string]struct{})
	for _, n := range m.visibleNodes() {
		rendered[n.Comment.ID] = struct{}{}
	}
	for id, unregister := range m.subs {
		if _, ok := rendered[id]; !ok {
			unregister()
			delete(m.subs, id)
		}
	}
	for id := range rendered {
		if _, ok := m.subs[id]; ok {
			continue
		}
		m.subs[id] = m.bus.Register(id, m.deliver(id))
	}
}

// deliver forwards pushed replies into the model's inbox without blocking the
// publisher.
func (m Model) deliver(id string) func([]domain.Comment) {
	inbox := m.inbox
	log := m.log
	return func(r []domain.Comment) {
		select {
		case inbox <- RepliesPushedMsg{ParentID: id, Replies: r}:
		default:
			log.Warn().Str("comment_id", id).Msg("reply inbox full, dropping push")
		}
	}
}

// waitForPush blocks until the bus delivers replies for a rendered node.
func (m Model) waitForPush() tea.Cmd {
	inbox := m.inbox
	return func() tea.Msg {
		return <-inbox
	}
}

func (m Model) mergeReplies(parentID string, incoming []domain.Comment) Model {
	incoming = domain.NormalizeComments(incoming, parentID)
	m.tree = domain.UpdateNodeByID(m.tree, parentID, func(c domain.Comment) domain.Comment {
		c.Replies = domain.MergeByID(c.Replies, incoming)
		return c
	})
	return m
}

func (m Model) handleRepliesPushed(msg RepliesPushedMsg) (Model, tea.Cmd) {
	if _, ok := m.subs[msg.ParentID]; ok || m.bus == nil {
		m = m.mergeReplies(msg.ParentID, msg.Replies)
	}
	return m, m.waitForPush()
}

// LoadReplies lazily fetches the replies of id and publishes them on the bus
// so every view showing id picks them up.
func (m *Model) LoadReplies(id string) tea.Cmd {
	if m.loader == nil || id == "" || m.loadingReplies[id] {
		return nil
	}
	if _, ok := domain.FindByID(m.tree, id); !ok {
		return nil
	}
	m.loadingReplies[id] = true
	loader := m.loader
	bus := m.bus
	return func() tea.Msg {
		r, err := loader.LoadReplies(context.Background(), id)
		if err == nil && bus != nil && len(r) > 0 {
			bus.Publish(id, r)
		}
		return RepliesLoadedMsg{ID: id, Replies: r, Err: err}
	}
}

func (m Model) handleRepliesLoaded(msg RepliesLoadedMsg) (Model, tea.Cmd) {
	delete(m.loadingReplies, msg.ID)
	if msg.Err != nil {
		m.log.Warn().Err(msg.Err).Str("comment_id", msg.ID).Msg("loading replies failed")
		return m, common.Notify(common.NoticeError, fmt.Sprintf("Could not load replies: %v", msg.Err))
	}
	if len(msg.Replies) == 0 {
		return m, common.Notify(common.NoticeInfo, "No more replies.")
	}
	delete(m.collapsed, msg.ID)
	m = m.mergeReplies(msg.ID, msg.Replies)
	return m, common.Notify(common.NoticeInfo, fmt.Sprintf("Loaded %s.", common.Pluralize(len(msg.Replies), "reply", "replies")))
}
