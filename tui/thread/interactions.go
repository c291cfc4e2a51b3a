package thread

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/blogcomments/domain"
	"github.com/CrestNiraj12/blogcomments/tui/common"
	"github.com/CrestNiraj12/blogcomments/tui/compose"
)

func loginRequired(action string) tea.Cmd {
	return common.Notify(common.NoticeError, fmt.Sprintf("Log in to %s.", action))
}

// ToggleLike likes or unlikes a comment. A comment with a like in flight
// ignores further toggles.
func (m *Model) ToggleLike(id string) tea.Cmd {
	if m.viewer == nil {
		return loginRequired("like comments")
	}
	if id == "" || m.liking[id] {
		return nil
	}
	if _, ok := domain.FindByID(m.tree, id); !ok {
		return nil
	}
	m.liking[id] = true
	comments := m.comments
	return func() tea.Msg {
		res, err := comments.ToggleLike(context.Background(), id)
		return LikeResultMsg{ID: id, Result: res, Err: err}
	}
}

func (m Model) handleLikeResult(msg LikeResultMsg) (Model, tea.Cmd) {
	delete(m.liking, msg.ID)
	if msg.Err != nil {
		m.log.Warn().Err(msg.Err).Str("comment_id", msg.ID).Msg("like failed")
		return m, common.Notify(common.NoticeError, fmt.Sprintf("Could not update like: %v", msg.Err))
	}
	m.tree = domain.UpdateNodeByID(m.tree, msg.ID, msg.Result.Apply)
	return m, nil
}

// StartReply opens the inline composer under the comment id.
func (m *Model) StartReply(id string) tea.Cmd {
	if m.viewer == nil {
		return loginRequired("reply")
	}
	target, ok := domain.FindByID(m.tree, id)
	if !ok {
		return nil
	}
	m.composer = compose.NewInline(id, "Reply to "+target.Author.Name, m.composerWidth(id))
	m.composing = true
	m.selectedID = id
	return m.composer.Init()
}

// StartComment opens the inline composer for a new top-level comment.
func (m *Model) StartComment() tea.Cmd {
	if m.viewer == nil {
		return loginRequired("comment")
	}
	m.composer = compose.NewInline("", "Add a comment", m.composerWidth(""))
	m.composing = true
	return m.composer.Init()
}

// StartCommentInEditor composes a top-level comment in $EDITOR.
func (m *Model) StartCommentInEditor() tea.Cmd {
	if m.viewer == nil {
		return loginRequired("comment")
	}
	m.composer = compose.NewEditor(m.editor, "", fmt.Sprintf("Commenting on post %d", m.postID))
	m.composing = true
	return m.composer.Init()
}

func (m *Model) closeComposer() {
	m.composing = false
	m.composer = compose.Model{}
}

// SubmitReply posts content as a reply to parentID. Blank content, a missing
// target or an unknown post make it a no-op.
func (m *Model) SubmitReply(parentID, content string) tea.Cmd {
	if m.viewer == nil {
		return loginRequired("reply")
	}
	if parentID == "" {
		return nil
	}
	return m.submit(parentID, content)
}

// AddTopLevelComment posts content directly on the post.
func (m *Model) AddTopLevelComment(content string) tea.Cmd {
	if m.viewer == nil {
		return loginRequired("comment")
	}
	return m.submit("", content)
}

func (m *Model) submit(parentID, content string) tea.Cmd {
	content = strings.TrimSpace(content)
	if content == "" || m.postID == 0 || m.submitting {
		return nil
	}
	req := domain.NewComment{Content: content, PostID: m.postID, ParentID: parentID}
	m.submitting = true
	if m.composing && m.composer.Inline() {
		m.composer.SetStatus("Posting...")
	}
	comments := m.comments
	return func() tea.Msg {
		fields, err := comments.Create(context.Background(), req)
		return CreateResultMsg{Request: req, Fields: fields, Err: err}
	}
}

func (m Model) handleCreateResult(msg CreateResultMsg) (Model, tea.Cmd) {
	m.submitting = false
	req := msg.Request
	if msg.Err != nil {
		m.log.Warn().Err(msg.Err).Str("parent_id", req.ParentID).Msg("create comment failed")
		if m.composing && m.composer.Inline() {
			m.composer.SetStatus("")
		}
		return m, common.Notify(common.NoticeError, fmt.Sprintf("Could not post: %v", msg.Err))
	}

	created := domain.Provisional(req, m.viewer.Author(), msg.Fields)
	if req.ParentID == "" {
		if _, exists := domain.FindByID(m.tree, created.ID); !exists {
			m.tree = append([]domain.Comment{created}, m.tree...)
			m.meta.TotalItems++
		}
	} else {
		m.tree = domain.AppendReply(m.tree, req.ParentID, created)
		delete(m.collapsed, req.ParentID)
		if m.loader != nil {
			m.loader.Invalidate(req.ParentID)
		}
	}
	m.selectedID = created.ID
	if m.composing && m.composer.ParentID() == req.ParentID {
		m.closeComposer()
	}

	text := "Comment posted."
	if req.ParentID != "" {
		text = "Reply posted."
	}
	return m, common.Notify(common.NoticeSuccess, text)
}

func (m Model) handleComposeDone(msg compose.DoneMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.closeComposer()
		return m, common.Notify(common.NoticeError, msg.Err.Error())
	}
	if strings.TrimSpace(msg.Content) == "" {
		if msg.Content == "" {
			m.closeComposer()
			return m, common.Notify(common.NoticeInfo, "Cancelled.")
		}
		return m, nil
	}
	var cmd tea.Cmd
	if msg.ParentID == "" {
		cmd = m.AddTopLevelComment(msg.Content)
	} else {
		cmd = m.SubmitReply(msg.ParentID, msg.Content)
	}
	if !m.composer.Inline() {
		m.composing = false
	}
	return m, cmd
}

// RequestDelete asks for confirmation before deleting id. Only the author
// and admins may delete.
func (m *Model) RequestDelete(id string) tea.Cmd {
	if m.viewer == nil {
		return loginRequired("delete comments")
	}
	target, ok := domain.FindByID(m.tree, id)
	if !ok || m.deleting[id] {
		return nil
	}
	if !m.viewer.CanDelete(target) {
		return common.Notify(common.NoticeError, "You can only delete your own comments.")
	}
	m.confirmDelete = id
	return nil
}

// CancelDelete dismisses the confirmation prompt.
func (m *Model) CancelDelete() {
	m.confirmDelete = ""
}

// ConfirmDelete deletes the comment awaiting confirmation.
func (m *Model) ConfirmDelete() tea.Cmd {
	id := m.confirmDelete
	m.confirmDelete = ""
	return m.DeleteComment(id)
}

// DeleteComment removes id and its whole subtree once the server agrees.
func (m *Model) DeleteComment(id string) tea.Cmd {
	if m.viewer == nil {
		return loginRequired("delete comments")
	}
	target, ok := domain.FindByID(m.tree, id)
	if !ok || m.deleting[id] {
		return nil
	}
	if !m.viewer.CanDelete(target) {
		return common.Notify(common.NoticeError, "You can only delete your own comments.")
	}
	m.deleting[id] = true
	comments := m.comments
	return func() tea.Msg {
		return DeleteResultMsg{ID: id, Err: comments.Delete(context.Background(), id)}
	}
}

func (m Model) handleDeleteResult(msg DeleteResultMsg) (Model, tea.Cmd) {
	delete(m.deleting, msg.ID)
	if msg.Err != nil {
		m.log.Warn().Err(msg.Err).Str("comment_id", msg.ID).Msg("delete failed")
		if errors.Is(msg.Err, domain.ErrForbidden) {
			return m, common.Notify(common.NoticeError, "You are not allowed to delete this comment.")
		}
		return m, common.Notify(common.NoticeError, fmt.Sprintf("Could not delete: %v", msg.Err))
	}

	removed, found := domain.FindByID(m.tree, msg.ID)
	if found && removed.IsTopLevel() && m.meta.TotalItems > 0 {
		m.meta.TotalItems--
	}
	if m.loader != nil {
		if found && removed.ParentID != "" {
			m.loader.Invalidate(removed.ParentID)
		}
		m.loader.Invalidate(msg.ID)
	}
	next := m.neighbourAfterRemoval(msg.ID)
	m.tree = domain.RemoveNodeByID(m.tree, msg.ID)
	delete(m.collapsed, msg.ID)
	if m.composing && m.composer.ParentID() != "" {
		if _, ok := domain.FindByID(m.tree, m.composer.ParentID()); !ok {
			m.closeComposer()
		}
	}
	if m.selectedID == msg.ID || !m.isVisible(m.selectedID) {
		m.selectedID = next
	}
	return m, common.Notify(common.NoticeSuccess, "Comment deleted.")
}
