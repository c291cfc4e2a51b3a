package compose

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/CrestNiraj12/blogcomments/tui/common"
)

// View renders the composer. Editor mode only shows its status line.
func (m Model) View() string {
	if m.mode == editorMode {
		return common.StatusBarStyle.Render(m.status)
	}

	var b strings.Builder
	b.WriteString(m.textarea.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(common.HintStyle.Render("  " + m.status))
	} else {
		b.WriteString(common.HintStyle.Render(fmt.Sprintf(
			"  ctrl+d: send • esc: cancel • %d/%d chars",
			ansi.StringWidth(m.textarea.Value()), CharLimit,
		)))
	}
	return b.String()
}
