package thread

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/blogcomments/domain"
	"github.com/CrestNiraj12/blogcomments/tui/common"
)

const indentWidth = 2

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

// cardWidth is the outer width of a comment card at depth.
func (m Model) cardWidth(depth int) int {
	return max(m.contentWidth()-2-indentLevel(depth)*indentWidth, 24)
}

func (m Model) composerWidth(parentID string) int {
	if parentID == "" {
		return m.cardWidth(0) - 2
	}
	for _, n := range m.visibleNodes() {
		if n.Comment.ID == parentID {
			return m.cardWidth(n.Depth+1) - 2
		}
	}
	return m.cardWidth(0) - 2
}

func (m Model) selectedComment() domain.Comment {
	if node, ok := m.selectedNode(); ok {
		return node.Comment
	}
	return domain.Comment{}
}

// renderTree renders every visible node and reports the line span of the
// selected one.
func (m Model) renderTree() (body string, selStart, selEnd int) {
	nodes := m.visibleNodes()
	selected := m.selectedIndex(nodes)
	var b strings.Builder
	line := 0
	for i, n := range nodes {
		block := m.renderNode(n, i == selected)
		if m.composing && m.composer.Inline() && m.composer.ParentID() == n.Comment.ID {
			block += "\n" + indentBlock(m.composer.View(), nodeIndent(n.Depth+1))
		}
		h := lipgloss.Height(block)
		if i == selected {
			selStart, selEnd = line, line+h
		}
		b.WriteString(block)
		b.WriteString("\n")
		line += h
	}
	return strings.TrimSuffix(b.String(), "\n"), selStart, selEnd
}

func nodeIndent(depth int) string {
	level := indentLevel(depth)
	if level == 0 {
		return "  "
	}
	return "  " + strings.Repeat(common.ThreadGuideStyle.Render("│")+" ", level)
}

func (m Model) renderNode(n visibleNode, selected bool) string {
	c := n.Comment
	width := m.cardWidth(n.Depth)
	inner := max(width-4, 10)

	var b strings.Builder
	b.WriteString(common.AuthorStyle.Render(c.Author.Name))
	if m.viewer.Owns(c) {
		b.WriteString(common.OwnBadgeStyle.Render("(you)"))
	}
	b.WriteString(common.TimestampStyle.Render(" · " + common.RelativeTime(c.CreatedAt, m.now())))
	b.WriteString("\n")
	b.WriteString(common.ContentStyle.Width(inner).Render(c.Content))
	b.WriteString("\n")
	b.WriteString(m.renderNodeFooter(c))
	if n.Depth >= deepThreadDepth {
		b.WriteString("\n" + common.WarningStyle.Render("Deep thread. Consider starting a new thread."))
	}

	style := common.UnselectedStyle
	if selected {
		style = common.SelectedStyle
	}
	card := style.Width(width - 2).Render(b.String())
	return indentBlock(card, nodeIndent(n.Depth))
}

func (m Model) renderNodeFooter(c domain.Comment) string {
	parts := make([]string, 0, 6)

	likes := common.Pluralize(c.Likes, "like", "likes")
	if c.Liked() {
		parts = append(parts, common.LikedStyle.Render("♥ "+likes))
	} else {
		parts = append(parts, common.HintStyle.Render("♡ "+likes))
	}

	if n := len(c.Replies); n > 0 {
		label := common.Pluralize(n, "reply", "replies")
		if m.collapsed[c.ID] {
			hidden := domain.CountDescendants(c)
			parts = append(parts, common.HintStyle.Render("▸ "+label+" ("+strconv.Itoa(hidden)+" hidden"+")"))
		} else {
			parts = append(parts, common.HintStyle.Render("▾ "+label))
		}
	}

	switch {
	case m.loadingReplies[c.ID]:
		parts = append(parts, common.DisabledHintStyle.Render("loading replies"))
	case m.loader != nil:
		parts = append(parts, common.HintStyle.Render("L replies"))
	}

	if m.viewer != nil {
		if m.liking[c.ID] {
			parts = append(parts, common.DisabledHintStyle.Render("l like"))
		} else {
			parts = append(parts, common.HintStyle.Render("l like"))
		}
		parts = append(parts, common.HintStyle.Render("r reply"))
		if m.viewer.CanDelete(c) {
			if m.deleting[c.ID] {
				parts = append(parts, common.DisabledHintStyle.Render("deleting"))
			} else {
				parts = append(parts, common.HintStyle.Render("d delete"))
			}
		}
	}
	return strings.Join(parts, common.HintStyle.Render(" · "))
}
