package thread

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/blogcomments/tui/common"
)

// View renders the thread: header, comment tree and footer.
func (m Model) View() string {
	if m.showHints {
		return m.renderKeyDialog()
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	var body string
	selStart, selEnd := 0, 0
	switch {
	case m.loading && len(m.tree) == 0:
		body = "  " + m.spinner.View() + " Loading comments..."
	case len(m.tree) == 0:
		body = common.TimestampStyle.Render("  No comments yet. Press c to start the conversation.")
	default:
		body, selStart, selEnd = m.renderTree()
	}
	if m.composing && m.composer.Inline() && m.composer.ParentID() == "" {
		composer := indentBlock(m.composer.View(), "  ") + "\n"
		body = composer + body
		offset := lipgloss.Height(composer)
		selStart, selEnd = 0, selEnd+offset
	}

	if m.height <= 0 {
		return header + "\n" + body + "\n" + footer
	}
	viewHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-1, 4)
	return header + "\n" + renderViewport(body, viewHeight, selStart, selEnd) + "\n" + footer
}

func (m Model) renderHeader() string {
	title := common.AppTitleStyle.Render("💬 Comments")
	post := common.TaglineStyle.Render(fmt.Sprintf("post #%d", m.postID))
	count := ""
	if m.meta.TotalItems > 0 {
		count = common.TimestampStyle.Render(" · " + common.Pluralize(m.meta.TotalItems, "comment", "comments"))
	}
	order := common.OrderStyle.Render("  sorted by " + m.order.Label())
	return common.ClampLinesToWidth(title+post+count+order, m.contentWidth())
}

func (m Model) renderFooter() string {
	var b strings.Builder
	switch {
	case m.loading && len(m.tree) > 0:
		b.WriteString("  " + m.spinner.View() + " Loading more comments...")
	case m.hasMore:
		b.WriteString(common.HintStyle.Render(fmt.Sprintf("  m: more comments (page %d of %d)", m.page, m.meta.TotalPages)))
	case len(m.tree) > 0:
		b.WriteString(common.HintStyle.Render("  End of comments."))
	}
	if m.confirmDelete != "" {
		b.WriteString("\n" + common.ConfirmStyle.Render("  Delete this comment and all its replies? (y/n)"))
	}
	b.WriteString("\n" + m.helpView())
	return b.String()
}

func (m Model) helpView() string {
	items := []string{"j/k: move", "enter: collapse", "o: sort", "R: refresh", "q: quit", "?: all keys"}
	if m.viewer != nil {
		items = []string{"j/k: move", "l: like", "r: reply", "c/C: comment", "enter: collapse", "o: sort", "q: quit", "?: all keys"}
	}
	if m.composing {
		items = []string{"ctrl+d: send", "esc: cancel"}
	}
	wrapWidth := max(m.width-2, 16)
	return common.StatusBarStyle.Width(wrapWidth).Render("  " + strings.Join(items, " • "))
}

func (m Model) renderKeyDialog() string {
	lines := []string{
		"j/k or up/down  move selection",
		"g / G           first / last comment",
		"enter / space   collapse or expand replies",
		"L               load replies of selected comment",
		"m               load more comments",
		"o               cycle sort order",
		"R               refresh",
	}
	if m.viewer != nil {
		lines = append(lines,
			"l               like / unlike",
			"r               reply inline",
			"c / C           comment inline / via $EDITOR",
		)
		if m.viewer.CanDelete(m.selectedComment()) {
			lines = append(lines, "d               delete selected comment")
		}
	}
	lines = append(lines, "q               quit", "ctrl+c          force quit", "?               toggle this dialog")

	body := "Keyboard Shortcuts\n\n" + strings.Join(lines, "\n") + "\n\nPress ?, esc, q, or enter to close."
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FF8700")).
		Padding(1, 2).
		Margin(1, 2).
		Render(body)
}

// renderViewport shows viewHeight lines of content, scrolled so that the
// lines [selStart, selEnd) stay on screen.
func renderViewport(content string, viewHeight, selStart, selEnd int) string {
	lines := strings.Split(content, "\n")
	maxScroll := max(len(lines)-viewHeight, 0)
	scroll := 0
	if selEnd > viewHeight {
		scroll = selEnd - viewHeight
	}
	if selStart < scroll {
		scroll = selStart
	}
	scroll = min(max(scroll, 0), maxScroll)
	end := min(scroll+viewHeight, len(lines))
	visible := append([]string(nil), lines[scroll:end]...)
	for len(visible) < viewHeight {
		visible = append(visible, "")
	}
	markerTop := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB454")).Bold(true).Render("▲ more above")
	markerBottom := lipgloss.NewStyle().Foreground(lipgloss.Color("#8BD5CA")).Bold(true).Render("▼ more below")
	if scroll > 0 && len(visible) > 0 {
		visible[0] = markerTop
	}
	if end < len(lines) && len(visible) > 0 {
		visible[len(visible)-1] = markerBottom
	}
	return strings.Join(visible, "\n")
}

func indentBlock(s, prefix string) string {
	if prefix == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
