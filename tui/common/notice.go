package common

import tea "github.com/charmbracelet/bubbletea"

// NoticeKind selects how a notice is rendered.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// NoticeMsg is a transient user-facing notification. The root model shows
// the latest one in its status bar.
type NoticeMsg struct {
	Kind NoticeKind
	Text string
}

// Notify wraps a notice into a tea.Cmd.
func Notify(kind NoticeKind, text string) tea.Cmd {
	return func() tea.Msg { return NoticeMsg{Kind: kind, Text: text} }
}

// Render styles the notice for the status bar.
func (n NoticeMsg) Render() string {
	switch n.Kind {
	case NoticeError:
		return ErrorStyle.Render(n.Text)
	case NoticeSuccess:
		return SuccessStyle.Render(n.Text)
	default:
		return TimestampStyle.Render(n.Text)
	}
}
